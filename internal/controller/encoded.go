package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	m "manimcells.dev/pkg/manimcells/internal/model"
)

// EncodedUI writes machine-readable documents, one per display call.
type EncodedUI struct {
	output io.Writer
	format string
}

// NewEncodedUI creates an EncodedUI for FormatJSON or FormatYAML.
func NewEncodedUI(output io.Writer, format string) *EncodedUI {
	return &EncodedUI{output: output, format: format}
}

type cellDocument struct {
	Path      m.Path       `json:"path" yaml:"path"`
	Candidate string       `json:"candidate" yaml:"candidate"`
	Cell      m.CellReport `json:"cell" yaml:"cell"`
	Text      string       `json:"text" yaml:"text"`
}

type sceneDocument struct {
	Path  m.Path   `json:"path" yaml:"path"`
	Name  string   `json:"name" yaml:"name"`
	Line  int      `json:"line" yaml:"line"`
	Bases []string `json:"bases" yaml:"bases"`
}

type watchStartDocument struct {
	Event  string       `json:"event" yaml:"event"`
	Dirs   []m.Path     `json:"dirs" yaml:"dirs"`
	Report m.ScanReport `json:"report" yaml:"report"`
}

type layoutChangeDocument struct {
	Event string `json:"event" yaml:"event"`
	Path  m.Path `json:"path" yaml:"path"`
	Diff  string `json:"diff" yaml:"diff"`
}

// DisplayScan encodes the scan report.
func (e *EncodedUI) DisplayScan(ctx context.Context, report m.ScanReport) error {
	return e.encode(ctx, report)
}

// DisplayCell encodes the selected cell with its text.
func (e *EncodedUI) DisplayCell(ctx context.Context, view m.CellView) error {
	return e.encode(ctx, cellDocument{
		Path:      view.Path,
		Candidate: view.Candidate.String(),
		Cell:      view.Cell,
		Text:      view.Text,
	})
}

// DisplayScene encodes the enclosing scene.
func (e *EncodedUI) DisplayScene(ctx context.Context, view m.SceneView) error {
	return e.encode(ctx, sceneDocument(view))
}

// DisplayWatchStart encodes the initial watch state.
func (e *EncodedUI) DisplayWatchStart(ctx context.Context, dirs []m.Path, report m.ScanReport) error {
	return e.encode(ctx, watchStartDocument{Event: "start", Dirs: dirs, Report: report})
}

// DisplayLayoutChange encodes one layout change.
func (e *EncodedUI) DisplayLayoutChange(ctx context.Context, path m.Path, diff string) error {
	return e.encode(ctx, layoutChangeDocument{Event: "change", Path: path, Diff: diff})
}

func (e *EncodedUI) encode(ctx context.Context, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch e.format {
	case FormatJSON:
		encoder := json.NewEncoder(e.output)
		encoder.SetIndent("", "  ")

		return encoder.Encode(value)
	case FormatYAML:
		// Every call starts its own document so watch output stays a valid stream.
		if _, err := io.WriteString(e.output, "---\n"); err != nil {
			return err
		}

		encoder := yaml.NewEncoder(e.output)
		encoder.SetIndent(2)

		if err := encoder.Encode(value); err != nil {
			return err
		}

		return encoder.Close()
	default:
		return fmt.Errorf("unknown output format %q", e.format)
	}
}
