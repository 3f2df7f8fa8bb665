// Package cells recovers the class/method skeleton of Python source text and
// splits construct method bodies into marker-delimited cells.
//
// Everything in this package is a pure function over an in-memory line slice.
// Malformed input never fails; it only yields fewer definitions or cells.
package cells

import (
	"strings"

	m "manimcells.dev/pkg/manimcells/internal/model"
)

// DefaultTabWidth follows the tab stops used by the Python tokenizer.
const DefaultTabWidth = 8

// lexState carries the bracket/string state from one physical line to the next.
type lexState struct {
	depth        int
	openerIndent int
	triple       string
	quote        byte
	backslash    bool
}

// SplitLines breaks text into physical lines and annotates each of them.
// A trailing "\r" is dropped so CRLF files behave like LF files.
func SplitLines(text string, tabWidth int) []m.SourceLine {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	raw := strings.Split(text, "\n")
	lines := make([]m.SourceLine, 0, len(raw))

	var state lexState

	for i, rawLine := range raw {
		rawLine = strings.TrimSuffix(rawLine, "\r")
		trimmed := strings.TrimSpace(rawLine)
		indent := IndentWidth(rawLine, tabWidth)

		if state.depth > 0 && state.triple == "" && state.quote == 0 &&
			indent <= state.openerIndent && isHeader(trimmed) {
			// An unclosed bracket must not swallow the definitions that follow.
			state.depth = 0
			state.backslash = false
		}

		inString := state.triple != "" || state.quote != 0
		continuation := inString || state.depth > 0 || state.backslash

		if !continuation && trimmed != "" {
			state.openerIndent = indent
		}

		lines = append(lines, m.SourceLine{
			Index:        i,
			Text:         rawLine,
			Indent:       indent,
			Blank:        trimmed == "",
			Continuation: continuation,
			InString:     inString,
		})

		state.feed(rawLine)
	}

	return lines
}

// IndentWidth returns the column width of the leading whitespace of text.
func IndentWidth(text string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	width := 0

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ' ':
			width++
		case '\t':
			width += tabWidth - width%tabWidth
		case '\f':
			width = 0
		default:
			return width
		}
	}

	return width
}

func isHeader(trimmed string) bool {
	return hasKeyword(trimmed, "class") || hasKeyword(trimmed, "def") ||
		hasKeyword(trimmed, "async") || strings.HasPrefix(trimmed, "@")
}

// feed advances the lexer over one physical line.
func (s *lexState) feed(text string) {
	s.backslash = false
	escapedEOL := false

	for i := 0; i < len(text); {
		c := text[i]

		switch {
		case s.triple != "":
			if c == '\\' {
				i += 2
				continue
			}

			if strings.HasPrefix(text[i:], s.triple) {
				s.triple = ""
				i += 3

				continue
			}

		case s.quote != 0:
			if c == '\\' {
				if i+1 >= len(text) {
					escapedEOL = true
				}

				i += 2

				continue
			}

			if c == s.quote {
				s.quote = 0
			}

		default:
			switch c {
			case '#':
				return
			case '"', '\'':
				if strings.HasPrefix(text[i:], `"""`) || strings.HasPrefix(text[i:], `'''`) {
					s.triple = text[i : i+3]
					i += 3

					continue
				}

				s.quote = c
			case '(', '[', '{':
				s.depth++
			case ')', ']', '}':
				if s.depth > 0 {
					s.depth--
				}
			case '\\':
				if i == len(text)-1 {
					s.backslash = true
				}
			}
		}

		i++
	}

	// Single-quoted strings end with the line unless the newline is escaped.
	if s.quote != 0 && !escapedEOL {
		s.quote = 0
	}
}

// stripComment removes a trailing `#` comment that is not inside a string.
func stripComment(text string) string {
	var quote byte

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return text[:i]
		}
	}

	return text
}

// logicalEnd returns the index of the last physical line of the logical line
// starting at start.
func logicalEnd(lines []m.SourceLine, start int) int {
	end := start
	for end+1 < len(lines) && lines[end+1].Continuation {
		end++
	}

	return end
}

// logicalText joins the physical lines of a logical line without comments.
func logicalText(lines []m.SourceLine, start, end int) string {
	if start == end {
		return stripComment(lines[start].Text)
	}

	parts := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		if lines[i].InString {
			parts = append(parts, lines[i].Text)
			continue
		}

		parts = append(parts, stripComment(lines[i].Text))
	}

	return strings.Join(parts, " ")
}
