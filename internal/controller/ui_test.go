package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	m "manimcells.dev/pkg/manimcells/internal/model"
)

func sampleReport() m.ScanReport {
	return m.ScanReport{
		Version: m.ReportVersion,
		Files: []m.FileReport{
			{
				Path: "scenes/basic.py",
				Candidates: []m.CandidateReport{
					{
						Class:  "BasicNotebook",
						Method: "construct",
						Line:   5,
						Cells: []m.CellReport{
							{Title: "## A Manim Cell", Line: 6, ContentStart: 7, ContentEnd: 9, DisplayEnd: 8},
							{Title: "## Empty", Line: 10, ContentStart: 11, ContentEnd: 10, DisplayEnd: 10},
						},
					},
					{Class: "NoCells", Method: "construct", Line: 14, Cells: []m.CellReport{}},
				},
			},
			{Path: "scenes/locked.py", Error: "permission denied"},
		},
	}
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	return cmd, out
}

func TestNewUI(t *testing.T) {
	cmd, _ := newTestCommand()

	tests := []struct {
		format string
		tty    bool
		want   any
	}{
		{FormatAuto, false, &SimpleUI{}},
		{"", true, &TUI{}},
		{FormatTable, true, &SimpleUI{}},
		{FormatJSON, true, &EncodedUI{}},
		{FormatYAML, false, &EncodedUI{}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			ui, err := NewUI(cmd, tt.format, tt.tty)
			require.NoError(t, err)
			assert.IsType(t, tt.want, ui)
		})
	}

	_, err := NewUI(cmd, "xml", false)
	assert.ErrorContains(t, err, "unknown output format")
}

func TestIsTTY_NonFile(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}

func TestSimpleUI_DisplayScan(t *testing.T) {
	cmd, out := newTestCommand()

	require.NoError(t, NewSimpleUI(cmd).DisplayScan(context.Background(), sampleReport()))

	text := out.String()
	assert.Contains(t, text, "scenes/basic.py")
	assert.Contains(t, text, "A Manim Cell")
	assert.Contains(t, text, "6-8")
	assert.Contains(t, text, "error: permission denied")
	assert.Contains(t, strings.ToUpper(text), "TOTAL FILES 2")
}

func TestSimpleUI_DisplayCellAndScene(t *testing.T) {
	cmd, out := newTestCommand()
	ui := NewSimpleUI(cmd)

	require.NoError(t, ui.DisplayCell(context.Background(), m.CellView{Text: "print(1)\n"}))
	require.NoError(t, ui.DisplayScene(context.Background(), m.SceneView{Name: "BasicNotebook"}))

	assert.Equal(t, "print(1)\nBasicNotebook\n", out.String())
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	cmd, out := newTestCommand()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, NewSimpleUI(cmd).DisplayScan(ctx, sampleReport()), context.Canceled)
	assert.Empty(t, out.String())
}

func TestScanRows(t *testing.T) {
	rows := scanRows(sampleReport())

	assert.Equal(t, [][]string{
		{"scenes/basic.py", "BasicNotebook", "5", "A Manim Cell", "6-8"},
		{"scenes/basic.py", "BasicNotebook", "5", "Empty", "10"},
		{"scenes/basic.py", "NoCells", "14", noValue, noValue},
		{"scenes/locked.py", "error: permission denied", noValue, noValue, noValue},
	}, rows)
}

func TestEncodedUI_JSON(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, NewEncodedUI(&out, FormatJSON).DisplayScan(context.Background(), sampleReport()))

	var decoded m.ScanReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, sampleReport().Files[0].Candidates[0].Cells, decoded.Files[0].Candidates[0].Cells)
}

func TestEncodedUI_YAMLStream(t *testing.T) {
	var out bytes.Buffer

	ui := NewEncodedUI(&out, FormatYAML)
	require.NoError(t, ui.DisplayLayoutChange(context.Background(), "a.py", "diff-1"))
	require.NoError(t, ui.DisplayLayoutChange(context.Background(), "b.py", "diff-2"))

	decoder := yaml.NewDecoder(strings.NewReader(out.String()))

	var paths []string

	for {
		var doc layoutChangeDocument
		if err := decoder.Decode(&doc); err != nil {
			break
		}

		paths = append(paths, string(doc.Path))
	}

	assert.Equal(t, []string{"a.py", "b.py"}, paths)
}

func TestTUI_DisplayScanWithoutTerminalPrints(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, NewTUI(&out).DisplayScan(context.Background(), sampleReport()))

	text := out.String()
	assert.Contains(t, text, "2 cell(s) in 2 scene(s), 2 file(s)")
	assert.Contains(t, text, "BasicNotebook.construct")
	assert.Contains(t, text, "no cells")
	assert.Contains(t, text, "error: permission denied")
}

func TestTUI_DisplayLayoutChange(t *testing.T) {
	var out bytes.Buffer

	diff := "--- a.py (before)\n+++ a.py (after)\n@@ -1 +1 @@\n-old\n+new\n"
	require.NoError(t, NewTUI(&out).DisplayLayoutChange(context.Background(), "a.py", diff))

	assert.Contains(t, out.String(), "-old")
	assert.Contains(t, out.String(), "+new")
}

func TestPagerModel(t *testing.T) {
	content := strings.Repeat("line\n", 100)
	model := newPagerModel("title", content, 80, 20, newStyles())

	assert.Contains(t, model.View(), "title")
	assert.Contains(t, model.View(), "q quit")

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	bottom := updated.(pagerModel)
	assert.True(t, bottom.viewport.AtBottom())

	updated, _ = bottom.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.True(t, updated.(pagerModel).viewport.AtTop())

	updated, _ = model.Update(tea.WindowSizeMsg{Width: 40, Height: 2})
	assert.Equal(t, 1, updated.(pagerModel).viewport.Height)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTUI_DisplayCellWithoutTerminalIsVerbatim(t *testing.T) {
	var out bytes.Buffer

	view := m.CellView{
		Candidate: m.CandidateID{Class: "Intro", Method: "construct"},
		Cell:      m.CellReport{Title: "## Title", Line: 3},
		Text:      "self.play(Write(title))\n",
	}
	require.NoError(t, NewTUI(&out).DisplayCell(context.Background(), view))

	assert.True(t, strings.HasSuffix(out.String(), "\nself.play(Write(title))\n"))
}

func TestHighlightPython(t *testing.T) {
	assert.Contains(t, highlightPython("print(1)\n", 80), "print")
	assert.Equal(t, "\n", highlightPython("\n", 80))
}
