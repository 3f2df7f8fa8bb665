// Package model defines the data structures shared by the scanner, the
// workflow and the output layers.
package model

// Path represents a file system path.
type Path string

// File represents a Python source file discovered on disk.
type File struct {
	FullPath  Path
	ShortPath Path
	Hash      string
}

// Source is a file selected for scanning.
type Source struct {
	Origin *File
}

// SourceLine is one physical line of a source file.
//
// Indent is the column width of the leading whitespace with tabs expanded to
// the next tab stop. Continuation is set when the line starts inside an open
// bracket, a string literal or right after a backslash continuation, i.e. it is
// not the first line of a logical statement. InString is set when the line
// starts inside a string literal.
type SourceLine struct {
	Index        int
	Text         string
	Indent       int
	Blank        bool
	Continuation bool
	InString     bool
}

// LineRange is a half-open range [Start, End) of 0-based line indices.
type LineRange struct {
	Start int
	End   int
}

// Len returns the number of lines in the range.
func (r LineRange) Len() int {
	if r.End <= r.Start {
		return 0
	}

	return r.End - r.Start
}

// Contains reports whether line lies inside the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line < r.End
}
