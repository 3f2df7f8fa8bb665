package cells

import (
	"strings"
	"unicode"
	"unicode/utf8"

	m "manimcells.dev/pkg/manimcells/internal/model"
)

type scopeKind int

const (
	classScope scopeKind = iota
	funcScope
)

// scope is one open block on the indentation stack.
type scope struct {
	kind       scopeKind
	indent     int
	bodyIndent int
	class      *m.ClassDef
	method     *m.MethodDef
}

// Scan recovers the class skeleton of a file in a single forward pass.
//
// Classes are returned in header order. Methods are attached to the class
// whose body they are declared in directly; nested functions and classes are
// scanned as independent definitions. A class declared inside a method body is
// still reported, with the innermost enclosing class as its parent.
func Scan(lines []m.SourceLine) []*m.ClassDef {
	var (
		classes     []*m.ClassDef
		stack       []*scope
		lastContent = -1
	)

	closeTop := func() {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.method == nil {
			return
		}

		end := lastContent + 1
		if end < top.method.Body.Start {
			end = top.method.Body.Start
		}

		top.method.Body.End = end
		top.method.BodyIndent = top.bodyIndent
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if line.Blank {
			continue
		}

		if line.Continuation {
			lastContent = i
			continue
		}

		// Comment lines end function bodies like statements do, but never
		// close or indent a class body.
		comment := strings.HasPrefix(strings.TrimSpace(line.Text), "#")

		for len(stack) > 0 && line.Indent <= stack[len(stack)-1].indent {
			if comment && stack[len(stack)-1].kind == classScope {
				break
			}

			closeTop()
		}

		if len(stack) > 0 {
			if top := stack[len(stack)-1]; top.bodyIndent < 0 && !(comment && top.kind == classScope) {
				top.bodyIndent = line.Indent
			}
		}

		lastContent = i

		end := logicalEnd(lines, i)
		text := logicalText(lines, i, end)

		if name, bases, ok := parseClassHeader(text); ok {
			class := &m.ClassDef{
				Name:   name,
				Bases:  bases,
				Indent: line.Indent,
				Line:   i,
				Parent: innermostClass(stack),
			}
			classes = append(classes, class)
			stack = append(stack, &scope{kind: classScope, indent: line.Indent, bodyIndent: -1, class: class})

			continue
		}

		if name, hasSelf, ok := parseDefHeader(text); ok {
			fn := &scope{kind: funcScope, indent: line.Indent, bodyIndent: -1}

			if owner := methodOwner(stack, line.Indent); owner != nil && hasSelf {
				method := &m.MethodDef{
					Name:       name,
					Indent:     line.Indent,
					Line:       i,
					Body:       m.LineRange{Start: end + 1, End: end + 1},
					BodyIndent: -1,
					Class:      owner,
				}
				owner.Methods = append(owner.Methods, method)
				fn.method = method
			}

			stack = append(stack, fn)
		}
	}

	for len(stack) > 0 {
		closeTop()
	}

	return classes
}

// innermostClass returns the closest open class scope, if any.
func innermostClass(stack []*scope) *m.ClassDef {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].kind == classScope {
			return stack[i].class
		}
	}

	return nil
}

// methodOwner returns the class whose direct body is at indent.
func methodOwner(stack []*scope, indent int) *m.ClassDef {
	if len(stack) == 0 {
		return nil
	}

	top := stack[len(stack)-1]
	if top.kind != classScope || top.bodyIndent != indent {
		return nil
	}

	return top.class
}

// parseClassHeader recognises `class Name[...](bases):`.
func parseClassHeader(text string) (string, []string, bool) {
	rest, ok := cutKeyword(strings.TrimSpace(text), "class")
	if !ok {
		return "", nil, false
	}

	name := identifier(rest)
	if name == "" {
		return "", nil, false
	}

	rest = strings.TrimLeftFunc(rest[len(name):], unicode.IsSpace)

	if strings.HasPrefix(rest, "[") {
		closing := matchingBracket(rest)
		if closing < 0 {
			return "", nil, false
		}

		rest = strings.TrimLeftFunc(rest[closing+1:], unicode.IsSpace)
	}

	var bases []string

	if strings.HasPrefix(rest, "(") {
		closing := matchingBracket(rest)
		if closing < 0 {
			return "", nil, false
		}

		bases = splitBases(rest[1:closing])
		rest = strings.TrimLeftFunc(rest[closing+1:], unicode.IsSpace)
	}

	if !strings.HasPrefix(rest, ":") {
		return "", nil, false
	}

	return name, bases, true
}

// parseDefHeader recognises `def name(` and reports whether the first
// parameter is `self`.
func parseDefHeader(text string) (string, bool, bool) {
	trimmed := strings.TrimSpace(text)
	if rest, ok := cutKeyword(trimmed, "async"); ok {
		trimmed = rest
	}

	rest, ok := cutKeyword(trimmed, "def")
	if !ok {
		return "", false, false
	}

	name := identifier(rest)
	if name == "" {
		return "", false, false
	}

	rest = strings.TrimLeftFunc(rest[len(name):], unicode.IsSpace)
	if !strings.HasPrefix(rest, "(") {
		return "", false, false
	}

	params := strings.TrimLeftFunc(rest[1:], unicode.IsSpace)
	hasSelf := identifier(params) == "self"

	return name, hasSelf, true
}

// cutKeyword strips keyword and the whitespace after it.
func cutKeyword(text, keyword string) (string, bool) {
	if !hasKeyword(text, keyword) {
		return "", false
	}

	return strings.TrimLeftFunc(text[len(keyword):], unicode.IsSpace), true
}

func hasKeyword(text, keyword string) bool {
	if !strings.HasPrefix(text, keyword) || len(text) == len(keyword) {
		return false
	}

	next := text[len(keyword)]

	return next == ' ' || next == '\t'
}

// identifier returns the Python identifier at the start of text.
func identifier(text string) string {
	end := 0

	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if r != '_' && !unicode.IsLetter(r) && (end == 0 || !unicode.IsDigit(r)) {
			break
		}

		end += size
	}

	return text[:end]
}

// matchingBracket returns the index of the bracket closing text[0].
func matchingBracket(text string) int {
	depth := 0

	var quote byte

	for i := 0; i < len(text); i++ {
		c := text[i]

		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}

			continue
		}

		switch c {
		case '"', '\'':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// splitBases splits a base list on top-level commas.
func splitBases(list string) []string {
	var (
		bases []string
		depth int
		start int
	)

	appendToken := func(token string) {
		if token = strings.TrimSpace(token); token != "" {
			bases = append(bases, token)
		}
	}

	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				appendToken(list[start:i])
				start = i + 1
			}
		}
	}

	appendToken(list[start:])

	return bases
}
