package model

// ReportVersion is the schema version written into scan reports.
const ReportVersion = 1

// CellReport describes one cell with 1-based line numbers.
type CellReport struct {
	Title string `json:"title" yaml:"title"`
	// Line is the marker line.
	Line int `json:"line" yaml:"line"`
	// ContentStart and ContentEnd bound the content lines inclusively;
	// ContentEnd < ContentStart means the cell has no content.
	ContentStart int `json:"content_start" yaml:"content_start"`
	ContentEnd   int `json:"content_end" yaml:"content_end"`
	// DisplayEnd is the last non-blank line of the cell.
	DisplayEnd int `json:"display_end" yaml:"display_end"`
}

// CandidateReport describes one construct method and its cells.
type CandidateReport struct {
	Class      string       `json:"class" yaml:"class"`
	Method     string       `json:"method" yaml:"method"`
	Indent     int          `json:"indent" yaml:"indent"`
	Line       int          `json:"line" yaml:"line"`
	BodyIndent int          `json:"body_indent" yaml:"body_indent"`
	Cells      []CellReport `json:"cells" yaml:"cells"`
}

// ID returns the candidate identifier of the report entry.
func (c CandidateReport) ID() CandidateID {
	return CandidateID{Class: c.Class, Method: c.Method, Indent: c.Indent}
}

// FileReport holds the scan result of a single file.
type FileReport struct {
	Path       Path              `json:"path" yaml:"path"`
	Hash       string            `json:"hash,omitempty" yaml:"hash,omitempty"`
	Candidates []CandidateReport `json:"candidates" yaml:"candidates"`
	Error      string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// CellCount returns the number of cells in the file.
func (f FileReport) CellCount() int {
	count := 0
	for _, candidate := range f.Candidates {
		count += len(candidate.Cells)
	}

	return count
}

// ScanReport is the result of scanning a set of files.
type ScanReport struct {
	Version int          `json:"version" yaml:"version"`
	Files   []FileReport `json:"files" yaml:"files"`
}

// Totals returns the number of candidates and cells across all files.
func (r ScanReport) Totals() (candidates int, cells int) {
	for _, file := range r.Files {
		candidates += len(file.Candidates)
		cells += file.CellCount()
	}

	return candidates, cells
}

// CellView is a single cell selected for extraction.
type CellView struct {
	Path      Path
	Candidate CandidateID
	Cell      CellReport
	Text      string
}

// SceneView is the scene enclosing a cursor line.
type SceneView struct {
	Path  Path
	Name  string
	Line  int
	Bases []string
}
