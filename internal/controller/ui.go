// Package controller provides output adapters for displaying cell layouts.
package controller

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "manimcells.dev/pkg/manimcells/internal/model"
)

// Output formats accepted by NewUI.
const (
	FormatAuto  = "auto"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// UI defines how workflow results are presented.
// Implementations can use different output methods (table, TUI, encoded).
type UI interface {
	DisplayScan(ctx context.Context, report m.ScanReport) error
	DisplayCell(ctx context.Context, view m.CellView) error
	DisplayScene(ctx context.Context, view m.SceneView) error
	DisplayWatchStart(ctx context.Context, dirs []m.Path, report m.ScanReport) error
	DisplayLayoutChange(ctx context.Context, path m.Path, diff string) error
}

// NewUI returns the UI for format. FormatAuto picks the interactive TUI when
// the command writes to a terminal.
func NewUI(cmd *cobra.Command, format string, useTTY bool) (UI, error) {
	switch format {
	case "", FormatAuto:
		if useTTY {
			return NewTUI(cmd.OutOrStdout()), nil
		}

		return NewSimpleUI(cmd), nil
	case FormatTable:
		return NewSimpleUI(cmd), nil
	case FormatJSON, FormatYAML:
		return NewEncodedUI(cmd.OutOrStdout(), format), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
