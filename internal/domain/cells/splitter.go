package cells

import (
	"strings"

	m "manimcells.dev/pkg/manimcells/internal/model"
)

// MarkerPrefix opens a new cell when it starts a line at the body indentation.
const MarkerPrefix = "##"

// IsMarker reports whether line is a cell marker for a body indented at
// baseIndent. Markers nested deeper than the body, or inside an unfinished
// statement, are plain comments.
func IsMarker(line m.SourceLine, baseIndent int) bool {
	if line.Blank || line.Continuation || line.InString || line.Indent != baseIndent {
		return false
	}

	return strings.HasPrefix(strings.TrimSpace(line.Text), MarkerPrefix)
}

// Split partitions body into cells. Lines before the first marker belong to no
// cell, and a body without markers yields no cells at all.
func Split(lines []m.SourceLine, body m.LineRange, baseIndent int) []m.Cell {
	if baseIndent < 0 || body.Len() == 0 {
		return nil
	}

	end := body.End
	if end > len(lines) {
		end = len(lines)
	}

	var (
		result []m.Cell
		open   *m.Cell
	)

	closeCell := func(at int) {
		if open == nil {
			return
		}

		open.End = at
		open.Last = lastContentLine(lines, open.Marker, at)
		result = append(result, *open)
		open = nil
	}

	for i := body.Start; i < end; i++ {
		if !IsMarker(lines[i], baseIndent) {
			continue
		}

		closeCell(i)

		open = &m.Cell{
			Marker: i,
			Start:  i + 1,
			Title:  strings.TrimSpace(lines[i].Text),
		}
	}

	closeCell(end)

	return result
}

// lastContentLine returns the last non-blank line in [marker, end).
func lastContentLine(lines []m.SourceLine, marker, end int) int {
	for i := end - 1; i > marker; i-- {
		if !lines[i].Blank {
			return i
		}
	}

	return marker
}
