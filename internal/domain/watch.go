package domain

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	m "manimcells.dev/pkg/manimcells/internal/model"
)

// RenderLayout prints the cell layout of a file, one candidate header followed
// by one line per cell.
func RenderLayout(file m.FileReport) string {
	var b strings.Builder

	for _, candidate := range file.Candidates {
		fmt.Fprintf(&b, "%s line %d\n", candidate.ID(), candidate.Line)

		for _, cell := range candidate.Cells {
			fmt.Fprintf(&b, "  %d-%d %s\n", cell.Line, cell.DisplayEnd, cell.Title)
		}
	}

	return b.String()
}

// LayoutDiff returns a unified diff between two layouts, or "" when they match.
func LayoutDiff(name string, before, after string) (string, error) {
	if before == after {
		return "", nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        layoutLines(before),
		B:        layoutLines(after),
		FromFile: name + " (before)",
		ToFile:   name + " (after)",
		Context:  1,
	})
	if err != nil {
		return "", fmt.Errorf("diff layout of %s: %w", name, err)
	}

	return diff, nil
}

func layoutLines(layout string) []string {
	if layout == "" {
		return nil
	}

	return difflib.SplitLines(layout)
}
