package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "manimcells.dev/pkg/manimcells/internal/model"
)

const noValue = "-"

// SimpleUI implements UI using the cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayScan prints one table row per cell.
func (s *SimpleUI) DisplayScan(ctx context.Context, report m.ScanReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderScanTable(report))

	return nil
}

// DisplayCell prints the cell text as-is so it can be piped into a session.
func (s *SimpleUI) DisplayCell(ctx context.Context, view m.CellView) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", view.Text)

	return nil
}

// DisplayScene prints the scene name.
func (s *SimpleUI) DisplayScene(ctx context.Context, view m.SceneView) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n", view.Name)

	return nil
}

// DisplayWatchStart prints the watched directories and the initial layout.
func (s *SimpleUI) DisplayWatchStart(ctx context.Context, dirs []m.Path, report m.ScanReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	candidates, cells := report.Totals()
	s.printf("Watching %d director(ies): %d cell(s) in %d scene(s)\n", len(dirs), cells, candidates)

	for _, dir := range dirs {
		s.printf("  %s\n", dir)
	}

	return nil
}

// DisplayLayoutChange prints the unified diff of a layout change.
func (s *SimpleUI) DisplayLayoutChange(ctx context.Context, _ m.Path, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n", diff)

	return nil
}

func renderScanTable(report m.ScanReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Scene", "Line", "Cell", "Lines"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
	})

	for _, row := range scanRows(report) {
		table.Append(row)
	}

	candidates, cells := report.Totals()
	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(report.Files)),
		fmt.Sprintf("%d", candidates),
		"",
		fmt.Sprintf("%d", cells),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

func scanRows(report m.ScanReport) [][]string {
	var rows [][]string

	for _, file := range report.Files {
		path := string(file.Path)

		if file.Error != "" {
			rows = append(rows, []string{path, "error: " + file.Error, noValue, noValue, noValue})
			continue
		}

		for _, candidate := range file.Candidates {
			scene := candidate.Class
			line := strconv.Itoa(candidate.Line)

			if len(candidate.Cells) == 0 {
				rows = append(rows, []string{path, scene, line, noValue, noValue})
				continue
			}

			for _, cell := range candidate.Cells {
				rows = append(rows, []string{path, scene, line, cellLabel(cell), cellLines(cell)})
			}
		}
	}

	return rows
}

func cellLabel(cell m.CellReport) string {
	label := m.Cell{Title: cell.Title}.Label()
	if label == "" {
		return cell.Title
	}

	return label
}

func cellLines(cell m.CellReport) string {
	if cell.DisplayEnd == cell.Line {
		return strconv.Itoa(cell.Line)
	}

	return fmt.Sprintf("%d-%d", cell.Line, cell.DisplayEnd)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
