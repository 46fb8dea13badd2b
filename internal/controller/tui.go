package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// TUI implements UI using Bubble Tea for the paged result views.
type TUI struct {
	output io.Writer
	config StartConfig

	total     int
	processed int
}

// NewTUI creates a new TUI writing to the command's output.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{output: cmd.OutOrStdout()}
}

// Start initializes the UI.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.config = newStartConfig(options...)

	return nil
}

// Close finalizes the UI.
func (t *TUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait returns immediately; paged views block inside their Display call.
func (t *TUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayScanStart prints the banner and the pool size.
func (t *TUI) DisplayScanStart(ctx context.Context, files int, workers int) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.total, t.processed = files, 0
	t.println(renderBanner())
	t.println(fmt.Sprintf("  📂 Scanning %d file(s) with %d worker(s)", files, workers))
}

// DisplayFileResult prints one progress line per failed file and a counter otherwise.
func (t *TUI) DisplayFileResult(ctx context.Context, result m.FileResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.processed++

	if result.Err != nil {
		t.println(errorStyle.Render(fmt.Sprintf("  ✗ %s: %v", result.Path, result.Err)))
		return
	}

	if len(result.Tests) > 0 {
		t.println(mutedStyle.Render(fmt.Sprintf("  [%d/%d] %s: %d test(s)", t.processed, t.total, result.Path, len(result.Tests))))
	}
}

// DisplaySummary pages through per-file test counts.
func (t *TUI) DisplaySummary(ctx context.Context, results []m.FileResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stats := buildFileStats(results)
	lines := make([]string, 0, len(stats))
	total := 0

	for _, stat := range stats {
		if stat.failed {
			lines = append(lines, errorStyle.Render(fmt.Sprintf("  ✗ %s: error", stat.path)))
			continue
		}

		count := fmt.Sprintf("%d", stat.count)
		if stat.count == 0 {
			count = mutedStyle.Render(count)
		}

		lines = append(lines, fmt.Sprintf("  %s: %s test(s)", stat.path, count))
		total += stat.count
	}

	summary := fmt.Sprintf("  📊 Total: %d property-based test(s) across %d file(s)", total, len(stats))

	return t.page(newPagerModel("🧪 Property-based tests per file:", lines, summary, "📭 No source files found"))
}

// DisplayArtifacts lists the written files.
func (t *TUI) DisplayArtifacts(ctx context.Context, artifacts []m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, artifact := range artifacts {
		t.println(successStyle.Render(fmt.Sprintf("  ✓ Saved %s", artifact)))
	}
}

// DisplayCatalogStart prints the banner and the pool size.
func (t *TUI) DisplayCatalogStart(ctx context.Context, pending int, done int, workers int) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.total, t.processed = pending, 0
	t.println(renderBanner())
	t.println(fmt.Sprintf("  🔎 Analyzing %d repositories with %d worker(s), %d already done", pending, workers, done))
}

// DisplayRepoOutcome prints one line per analyzed repository.
func (t *TUI) DisplayRepoOutcome(ctx context.Context, outcome m.RepoOutcome) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.processed++
	prefix := fmt.Sprintf("  [%d/%d] %s", t.processed, t.total, outcome.Name)

	switch outcome.Status {
	case m.Recorded:
		t.println(successStyle.Render(fmt.Sprintf("%s: %d test(s)", prefix, outcome.Count)))
	case m.BelowThreshold:
		t.println(mutedStyle.Render(fmt.Sprintf("%s: %d test(s), below threshold", prefix, outcome.Count)))
	case m.Skipped:
		t.println(warnStyle.Render(fmt.Sprintf("%s: skipped (%v)", prefix, outcome.Err)))
	}
}

// DisplayCatalog pages through the ranked catalog.
func (t *TUI) DisplayCatalog(ctx context.Context, catalog m.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repos := append([]m.CatalogEntry(nil), catalog.Repos...)
	sort.SliceStable(repos, func(i, j int) bool { return repos[i].Stars > repos[j].Stars })

	lines := make([]string, 0, len(repos))
	for i, entry := range repos {
		lines = append(lines, fmt.Sprintf("  %3d. %s ⭐ %d, 🧪 %d", i+1, entry.Name, entry.Stars, entry.PropertyTestCount))
	}

	summary := fmt.Sprintf("  📊 %d recorded, %d below threshold", len(catalog.Repos), len(catalog.BelowThreshold))

	return t.page(newPagerModel("🏆 Catalog:", lines, summary, "📭 No repositories recorded"))
}

// DisplayWarning prints a highlighted diagnostic.
func (t *TUI) DisplayWarning(ctx context.Context, message string) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.println(warnStyle.Render("  ⚠️  " + message))
}

func (t *TUI) println(line string) {
	_, _ = fmt.Fprintln(t.output, line)
}

// page prints short views directly and runs an alt-screen pager otherwise.
func (t *TUI) page(model pagerModel) error {
	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	if !model.needsPagination() {
		_, err := fmt.Fprint(t.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func renderBanner() string {
	return titleStyle.Render(
		"╔════════════════════════════════════════════════════════════════╗\n" +
			"║               pbtscan - Property-Based Test Scan               ║\n" +
			"╚════════════════════════════════════════════════════════════════╝")
}

type pagerKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Quit     key.Binding
}

var pagerKeys = pagerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "u"),
		key.WithHelp("u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "d"),
		key.WithHelp("d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "bottom"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// pagerModel is a scrollable list with a fixed header and summary.
type pagerModel struct {
	title   string
	lines   []string
	summary string
	empty   string
	height  int
	width   int
	offset  int
}

func newPagerModel(title string, lines []string, summary, empty string) pagerModel {
	return pagerModel{
		title:   title,
		lines:   lines,
		summary: summary,
		empty:   empty,
	}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.height = msg.Height
		pm.width = msg.Width
		pm.offset = pm.clamp(pm.offset)

		return pm, nil

	case tea.KeyMsg:
		return pm.handleKeyPress(msg)
	}

	return pm, nil
}

func (pm pagerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, pagerKeys.Quit):
		return pm, tea.Quit
	case key.Matches(msg, pagerKeys.Down):
		pm.offset = pm.clamp(pm.offset + 1)
	case key.Matches(msg, pagerKeys.Up):
		pm.offset = pm.clamp(pm.offset - 1)
	case key.Matches(msg, pagerKeys.PageDown):
		pm.offset = pm.clamp(pm.offset + pm.itemsPerPage())
	case key.Matches(msg, pagerKeys.PageUp):
		pm.offset = pm.clamp(pm.offset - pm.itemsPerPage())
	case key.Matches(msg, pagerKeys.Home):
		pm.offset = 0
	case key.Matches(msg, pagerKeys.End):
		pm.offset = pm.maxOffset()
	}

	return pm, nil
}

func (pm pagerModel) clamp(offset int) int {
	if offset < 0 {
		return 0
	}

	if maxOff := pm.maxOffset(); offset > maxOff {
		return maxOff
	}

	return offset
}

// itemsPerPage calculates how many lines fit between the header and footer.
func (pm pagerModel) itemsPerPage() int {
	if pm.height == 0 {
		return 10
	}
	// Banner 3, title 2, summary 2, footer 3.
	reserved := 10

	available := pm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

func (pm pagerModel) maxOffset() int {
	maxOff := len(pm.lines) - pm.itemsPerPage()
	if maxOff < 0 {
		return 0
	}

	return maxOff
}

func (pm pagerModel) needsPagination() bool {
	if len(pm.lines) == 0 || pm.height == 0 {
		return false
	}

	return len(pm.lines) > pm.itemsPerPage()
}

func (pm pagerModel) View() string {
	var b strings.Builder

	b.WriteString(renderBanner() + "\n")
	b.WriteString("  " + pm.title + "\n\n")

	if len(pm.lines) == 0 {
		b.WriteString("  " + pm.empty + "\n")
		return b.String()
	}

	visible := pm.lines
	start, end := 0, len(pm.lines)

	if pm.needsPagination() {
		start = pm.offset
		end = start + pm.itemsPerPage()

		if end > len(pm.lines) {
			end = len(pm.lines)
		}

		visible = pm.lines[start:end]
	}

	for _, line := range visible {
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + pm.summary + "\n")

	if pm.needsPagination() {
		fmt.Fprintf(&b, "\n  Showing %d-%d of %d\n", start+1, end, len(pm.lines))
		b.WriteString(mutedStyle.Render("  " + pagerHelp()) + "\n")
	}

	return b.String()
}

func pagerHelp() string {
	bindings := []key.Binding{pagerKeys.Up, pagerKeys.Down, pagerKeys.Home, pagerKeys.End, pagerKeys.Quit}
	parts := make([]string, 0, len(bindings))

	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+": "+help.Desc)
	}

	return strings.Join(parts, " | ")
}
