package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "manimcells.dev/pkg/manimcells/internal/model"
)

// pagerChrome is the number of lines taken by the pager header and footer.
const pagerChrome = 3

type styles struct {
	header  lipgloss.Style
	path    lipgloss.Style
	scene   lipgloss.Style
	muted   lipgloss.Style
	err     lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
	hunk    lipgloss.Style
}

func newStyles() styles {
	return styles{
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#5f5fd7")).
			Padding(0, 1).
			Bold(true),
		path:    lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).Bold(true),
		scene:   lipgloss.NewStyle().Bold(true),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")),
		err:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")),
		added:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd75f")),
		removed: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")),
		hunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd7d7")),
	}
}

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
	styles styles
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output, styles: newStyles()}
}

// DisplayScan renders the layout of every file and pages it when it does not
// fit on the terminal.
func (p *TUI) DisplayScan(ctx context.Context, report m.ScanReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content := p.renderScan(report)
	candidates, cells := report.Totals()
	title := fmt.Sprintf("manimcells: %d cell(s) in %d scene(s), %d file(s)", cells, candidates, len(report.Files))

	width, height, ok := p.terminalSize()
	if !ok || strings.Count(content, "\n")+pagerChrome <= height {
		_, err := fmt.Fprintf(p.output, "%s\n%s", p.styles.header.Render(title), content)
		return err
	}

	model := newPagerModel(title, content, width, height, p.styles)

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayCell prints the cell text. On a terminal the code is highlighted;
// piped output stays verbatim.
func (p *TUI) DisplayCell(ctx context.Context, view m.CellView) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	text := view.Text
	if width, _, ok := p.terminalSize(); ok {
		text = highlightPython(text, width)
	}

	header := fmt.Sprintf("%s %s", view.Candidate.Class, cellLabel(view.Cell))
	_, err := fmt.Fprintf(p.output, "%s\n%s", p.styles.header.Render(header), text)

	return err
}

// highlightPython renders text as a Python code block, falling back to the
// plain text when rendering fails.
func highlightPython(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}

	rendered, err := renderer.Render("```python\n" + text + "```\n")
	if err != nil {
		return text
	}

	return rendered
}

// DisplayScene prints the scene name with its bases.
func (p *TUI) DisplayScene(ctx context.Context, view m.SceneView) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(p.output, "%s %s\n",
		p.styles.scene.Render(view.Name),
		p.styles.muted.Render(fmt.Sprintf("(%s) line %d", strings.Join(view.Bases, ", "), view.Line)))

	return err
}

// DisplayWatchStart prints the watched directories and the initial layout.
func (p *TUI) DisplayWatchStart(ctx context.Context, dirs []m.Path, report m.ScanReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	candidates, cells := report.Totals()

	var b strings.Builder

	b.WriteString(p.styles.header.Render(fmt.Sprintf("Watching %d director(ies)", len(dirs))))
	b.WriteString("\n")

	for _, dir := range dirs {
		b.WriteString(p.styles.muted.Render("  " + string(dir)))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%d cell(s) in %d scene(s)\n\n", cells, candidates)
	b.WriteString(p.renderScan(report))

	_, err := io.WriteString(p.output, b.String())

	return err
}

// DisplayLayoutChange prints a colorized unified diff.
func (p *TUI) DisplayLayoutChange(ctx context.Context, _ m.Path, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder

	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(p.styles.scene.Render(line))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(p.styles.hunk.Render(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(p.styles.added.Render(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(p.styles.removed.Render(line))
		default:
			b.WriteString(line)
		}

		b.WriteString("\n")
	}

	b.WriteString("\n")

	_, err := io.WriteString(p.output, b.String())

	return err
}

func (p *TUI) renderScan(report m.ScanReport) string {
	var b strings.Builder

	if len(report.Files) == 0 {
		b.WriteString("  No Python files found\n")
		return b.String()
	}

	for _, file := range report.Files {
		b.WriteString(p.styles.path.Render(string(file.Path)))
		b.WriteString("\n")

		if file.Error != "" {
			b.WriteString(p.styles.err.Render("  error: " + file.Error))
			b.WriteString("\n")

			continue
		}

		if len(file.Candidates) == 0 {
			b.WriteString(p.styles.muted.Render("  no scenes"))
			b.WriteString("\n")

			continue
		}

		for _, candidate := range file.Candidates {
			fmt.Fprintf(&b, "  %s %s\n",
				p.styles.scene.Render(candidate.Class+"."+candidate.Method),
				p.styles.muted.Render(fmt.Sprintf("line %d", candidate.Line)))

			if len(candidate.Cells) == 0 {
				b.WriteString(p.styles.muted.Render("    no cells"))
				b.WriteString("\n")
			}

			for _, cell := range candidate.Cells {
				fmt.Fprintf(&b, "    %s %s\n",
					p.styles.muted.Render(fmt.Sprintf("%-9s", cellLines(cell))),
					cellLabel(cell))
			}
		}
	}

	return b.String()
}

func (p *TUI) terminalSize() (int, int, bool) {
	f, ok := p.output.(*os.File)
	if !ok {
		return 0, 0, false
	}

	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || height <= 0 {
		return 0, 0, false
	}

	return width, height, true
}

type pagerKeyMap struct {
	Top    key.Binding
	Bottom key.Binding
	Quit   key.Binding
}

func defaultPagerKeys() pagerKeyMap {
	return pagerKeyMap{
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k pagerKeyMap) help() string {
	parts := []string{"↑/↓ scroll"}

	for _, binding := range []key.Binding{k.Top, k.Bottom, k.Quit} {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}

	return strings.Join(parts, " • ")
}

// pagerModel scrolls a pre-rendered document.
type pagerModel struct {
	title    string
	viewport viewport.Model
	keys     pagerKeyMap
	styles   styles
}

func newPagerModel(title, content string, width, height int, st styles) pagerModel {
	vp := viewport.New(width, pagerHeight(height))
	vp.SetContent(content)

	return pagerModel{
		title:    title,
		viewport: vp,
		keys:     defaultPagerKeys(),
		styles:   st,
	}
}

func pagerHeight(height int) int {
	if height-pagerChrome < 1 {
		return 1
	}

	return height - pagerChrome
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.viewport.Width = msg.Width
		pm.viewport.Height = pagerHeight(msg.Height)

		return pm, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, pm.keys.Quit):
			return pm, tea.Quit
		case key.Matches(msg, pm.keys.Top):
			pm.viewport.GotoTop()
			return pm, nil
		case key.Matches(msg, pm.keys.Bottom):
			pm.viewport.GotoBottom()
			return pm, nil
		}
	}

	var cmd tea.Cmd
	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	footer := pm.styles.muted.Render(fmt.Sprintf("%3.f%%  %s", pm.viewport.ScrollPercent()*100, pm.keys.help()))

	return lipgloss.JoinVertical(lipgloss.Left,
		pm.styles.header.Render(pm.title),
		pm.viewport.View(),
		footer,
	)
}
