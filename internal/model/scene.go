package model

import (
	"fmt"
	"strings"
)

// ConstructMethod is the only method name that can hold cells.
const ConstructMethod = "construct"

// ClassDef is a class statement found by the scanner.
type ClassDef struct {
	Name string
	// Bases holds the raw, unresolved tokens between the header parentheses.
	Bases  []string
	Indent int
	// Line is the 0-based index of the `class` header.
	Line    int
	Parent  *ClassDef
	Methods []*MethodDef
}

// HasBases reports whether the class declares at least one base token.
func (c *ClassDef) HasBases() bool {
	return len(c.Bases) > 0
}

// Depth returns the number of enclosing classes.
func (c *ClassDef) Depth() int {
	depth := 0
	for p := c.Parent; p != nil; p = p.Parent {
		depth++
	}

	return depth
}

// MethodDef is a `def name(self...)` declared directly in a class body.
type MethodDef struct {
	Name   string
	Indent int
	// Line is the 0-based index of the `def` header.
	Line int
	// Body excludes the signature line(s).
	Body LineRange
	// BodyIndent is the indentation of the method's direct statements, or -1
	// when the body has no statement on its own line.
	BodyIndent int
	Class      *ClassDef
}

// CandidateID identifies a construct method inside a file. Indent tells apart
// same-named classes declared at different nesting levels.
type CandidateID struct {
	Class  string
	Method string
	Indent int
}

func (id CandidateID) String() string {
	return fmt.Sprintf("%s.%s@%d", id.Class, id.Method, id.Indent)
}

// Candidate is a construct method eligible for cell splitting.
type Candidate struct {
	ID     CandidateID
	Method *MethodDef
	Cells  []Cell
}

// Cell is one marker-delimited slice of a construct body.
//
// Marker is the marker line, [Start, End) the content lines after it. Last is
// the last non-blank line in [Marker, End) and is never smaller than Marker; the
// inclusive range [Marker, Last] is what editors fold and highlight.
type Cell struct {
	Marker int
	Start  int
	End    int
	Last   int
	Title  string
}

// Content returns the content range of the cell.
func (c Cell) Content() LineRange {
	return LineRange{Start: c.Start, End: c.End}
}

// Covers reports whether line falls inside the display range of the cell.
func (c Cell) Covers(line int) bool {
	return line >= c.Marker && line <= c.Last
}

// Label returns the marker text without its leading comment characters.
func (c Cell) Label() string {
	return strings.TrimSpace(strings.TrimLeft(c.Title, "# "))
}
