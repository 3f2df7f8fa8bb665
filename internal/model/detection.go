package model

import (
	"fmt"
	"strings"
)

// Detection is the result of scanning one file.
type Detection struct {
	Hash       string
	TabWidth   int
	Lines      []SourceLine
	Classes    []*ClassDef
	Candidates []Candidate
}

// CellCount returns the number of cells across all candidates.
func (d *Detection) CellCount() int {
	count := 0
	for _, candidate := range d.Candidates {
		count += len(candidate.Cells)
	}

	return count
}

// CellAt returns the cell whose display range contains line (0-based).
func (d *Detection) CellAt(line int) (Candidate, Cell, error) {
	if line < 0 || line >= len(d.Lines) {
		return Candidate{}, Cell{}, fmt.Errorf("%w: %d", ErrLineOutOfRange, line+1)
	}

	for _, candidate := range d.Candidates {
		for _, cell := range candidate.Cells {
			if cell.Covers(line) {
				return candidate, cell, nil
			}
		}
	}

	return Candidate{}, Cell{}, fmt.Errorf("%w: %d", ErrNoCell, line+1)
}

// SceneAt returns the last class with declared bases whose header is at or
// before line (0-based).
func (d *Detection) SceneAt(line int) (*ClassDef, error) {
	if line < 0 || line >= len(d.Lines) {
		return nil, fmt.Errorf("%w: %d", ErrLineOutOfRange, line+1)
	}

	var scene *ClassDef

	for _, class := range d.Classes {
		if class.Line > line {
			break
		}

		if class.HasBases() {
			scene = class
		}
	}

	if scene == nil {
		return nil, fmt.Errorf("%w: %d", ErrNoScene, line+1)
	}

	return scene, nil
}

// CellText returns the source text of the cell content, up to its last
// non-blank line. With dedent set, the candidate's body indentation is removed
// from every line.
func (d *Detection) CellText(candidate Candidate, cell Cell, dedent bool) string {
	if cell.Last < cell.Start {
		return ""
	}

	width := -1
	if dedent && candidate.Method != nil {
		width = candidate.Method.BodyIndent
	}

	var b strings.Builder

	for i := cell.Start; i <= cell.Last && i < len(d.Lines); i++ {
		text := d.Lines[i].Text
		if width > 0 {
			text = trimColumns(text, width, d.TabWidth)
		}

		b.WriteString(text)
		b.WriteByte('\n')
	}

	return b.String()
}

// trimColumns removes up to width columns of leading whitespace.
func trimColumns(text string, width, tabWidth int) string {
	col := 0

	for i := 0; i < len(text); i++ {
		if col >= width {
			return text[i:]
		}

		switch text[i] {
		case ' ':
			col++
		case '\t':
			if tabWidth <= 0 {
				col++
				continue
			}

			col += tabWidth - col%tabWidth
		default:
			return text[i:]
		}
	}

	return ""
}
