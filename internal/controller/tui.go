package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	m "depmap.dev/pkg/depmap/internal/model"
)

// pagerChromeHeight is the number of lines taken by the pager title and footer.
const pagerChromeHeight = 2

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	resolvedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	unresolvedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	faintStyle      = lipgloss.NewStyle().Faint(true)
	addedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	removedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// TUI implements UI using lipgloss styling and a Bubble Tea pager for long output.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayResolution shows a single resolution.
func (p *TUI) DisplayResolution(ctx context.Context, resolution m.Resolution) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", statusMark(resolution.Exists), resolution.Path)
	fmt.Fprintf(&b, "  %s %s\n", faintStyle.Render("strategy:"), resolution.Strategy)
	fmt.Fprintf(&b, "  %s %s\n", faintStyle.Render("from:"), resolution.Reference.MainFile)

	return p.show(ctx, "", b.String())
}

// DisplayReport shows the report table followed by a summary.
func (p *TUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder

	b.WriteString(renderReportTable(report))

	summary := report.Summarize()
	fmt.Fprintf(&b, "\n%s %s\n",
		resolvedStyle.Render(fmt.Sprintf("%d resolved", summary.Resolved)),
		faintStyle.Render(fmt.Sprintf("of %d", summary.Total)))

	for _, entry := range report.Unresolved() {
		fmt.Fprintf(&b, "%s %s %s\n", statusMark(false), entry.Reference.Reference, faintStyle.Render("from "+string(entry.Reference.MainFile)))
	}

	return p.show(ctx, fmt.Sprintf("Report %s", report.ID), b.String())
}

// DisplaySegments shows the hierarchy segments, leaf first.
func (p *TUI) DisplaySegments(ctx context.Context, path m.Path, segments []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder

	for i, segment := range segments {
		fmt.Fprintf(&b, "%s %s\n", faintStyle.Render(fmt.Sprintf("%2d", i)), segment)
	}

	return p.show(ctx, string(path), b.String())
}

// DisplayDiff shows a colored unified diff.
func (p *TUI) DisplayDiff(ctx context.Context, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if diff == "" {
		return p.show(ctx, "", faintStyle.Render(noDifferencesMessage)+"\n")
	}

	var b strings.Builder

	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(titleStyle.Render(strings.TrimSuffix(line, "\n")))
		case strings.HasPrefix(line, "+"):
			b.WriteString(addedStyle.Render(strings.TrimSuffix(line, "\n")))
		case strings.HasPrefix(line, "-"):
			b.WriteString(removedStyle.Render(strings.TrimSuffix(line, "\n")))
		default:
			b.WriteString(strings.TrimSuffix(line, "\n"))
		}

		if strings.HasSuffix(line, "\n") {
			b.WriteString("\n")
		}
	}

	return p.show(ctx, "", b.String())
}

// show prints content directly, or opens a pager when it does not fit the terminal.
func (p *TUI) show(ctx context.Context, title, content string) error {
	width, height, ok := p.terminalSize()

	if !ok || strings.Count(content, "\n") <= height-pagerChromeHeight {
		if title != "" {
			content = titleStyle.Render(title) + "\n" + content
		}

		_, err := fmt.Fprint(p.output, content)

		return err
	}

	program := tea.NewProgram(
		newPagerModel(title, content, width, height),
		tea.WithOutput(p.output),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := program.Run()

	return err
}

func (p *TUI) terminalSize() (int, int, bool) {
	f, ok := p.output.(*os.File)
	if !ok {
		return 0, 0, false
	}

	width, height, err := term.GetSize(f.Fd())
	if err != nil || height <= pagerChromeHeight {
		return 0, 0, false
	}

	return width, height, true
}

func statusMark(exists bool) string {
	if exists {
		return resolvedStyle.Render("✓")
	}

	return unresolvedStyle.Render("✗")
}

// pagerModel is a scrollable view over pre-rendered content.
type pagerModel struct {
	title    string
	viewport viewport.Model
}

func newPagerModel(title, content string, width, height int) pagerModel {
	vp := viewport.New(width, height-pagerChromeHeight)
	vp.SetContent(content)

	return pagerModel{title: title, viewport: vp}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return pm, tea.Quit
		}
	case tea.WindowSizeMsg:
		pm.viewport.Width = msg.Width
		pm.viewport.Height = max(msg.Height-pagerChromeHeight, 1)
	}

	var cmd tea.Cmd
	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	footer := faintStyle.Render(fmt.Sprintf("%3.f%%  ↑/↓ scroll • q quit", pm.viewport.ScrollPercent()*100))

	return titleStyle.Render(pm.title) + "\n" + pm.viewport.View() + "\n" + footer
}
