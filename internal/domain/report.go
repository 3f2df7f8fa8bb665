package domain

import (
	m "manimcells.dev/pkg/manimcells/internal/model"
)

// NewFileReport converts a detection into its 1-based report form.
func NewFileReport(path m.Path, detection *m.Detection) m.FileReport {
	candidates := make([]m.CandidateReport, 0, len(detection.Candidates))
	for _, candidate := range detection.Candidates {
		candidates = append(candidates, NewCandidateReport(candidate))
	}

	return m.FileReport{
		Path:       path,
		Hash:       detection.Hash,
		Candidates: candidates,
	}
}

// NewCandidateReport converts a candidate and its cells.
func NewCandidateReport(candidate m.Candidate) m.CandidateReport {
	cells := make([]m.CellReport, 0, len(candidate.Cells))
	for _, cell := range candidate.Cells {
		cells = append(cells, NewCellReport(cell))
	}

	report := m.CandidateReport{
		Class:      candidate.ID.Class,
		Method:     candidate.ID.Method,
		Indent:     candidate.ID.Indent,
		BodyIndent: -1,
		Cells:      cells,
	}

	if candidate.Method != nil {
		report.Line = candidate.Method.Line + 1
		report.BodyIndent = candidate.Method.BodyIndent
	}

	return report
}

// NewCellReport converts a cell. The exclusive 0-based content end is the
// inclusive 1-based one.
func NewCellReport(cell m.Cell) m.CellReport {
	return m.CellReport{
		Title:        cell.Title,
		Line:         cell.Marker + 1,
		ContentStart: cell.Start + 1,
		ContentEnd:   cell.End,
		DisplayEnd:   cell.Last + 1,
	}
}

// NewSceneView describes the scene enclosing a cursor.
func NewSceneView(path m.Path, class *m.ClassDef) m.SceneView {
	return m.SceneView{
		Path:  path,
		Name:  class.Name,
		Line:  class.Line + 1,
		Bases: class.Bases,
	}
}
