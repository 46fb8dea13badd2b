package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

// SimpleUI implements UI using cobra Command's output streams.
type SimpleUI struct {
	cmd    *cobra.Command
	config StartConfig
	bar    *progressbar.ProgressBar

	warn    *color.Color
	failure *color.Color
	success *color.Color
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{
		cmd:     cmd,
		warn:    color.New(color.FgYellow),
		failure: color.New(color.FgRed),
		success: color.New(color.FgGreen),
	}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.config = newStartConfig(options...)

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	if s.bar != nil {
		_ = s.bar.Finish()
		s.bar = nil
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayScanStart announces the extraction pool and starts a progress bar.
func (s *SimpleUI) DisplayScanStart(ctx context.Context, files int, workers int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Scanning %d file(s) with %d worker(s)\n", files, workers)
	s.bar = newProgressBar(s.cmd.ErrOrStderr(), files, "Scanning files", "files/s")
}

// DisplayFileResult advances the progress bar and reports failures.
func (s *SimpleUI) DisplayFileResult(ctx context.Context, result m.FileResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	if s.bar != nil {
		_ = s.bar.Add(1)
	}

	if result.Err != nil {
		s.colorf(s.failure, "Error: %s: %v\n", result.Path, result.Err)
	}
}

// DisplaySummary prints per-file test counts.
func (s *SimpleUI) DisplaySummary(ctx context.Context, results []m.FileResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.bar != nil {
		_ = s.bar.Finish()
		s.bar = nil
	}

	stats := buildFileStats(results)
	s.printf("\n%s", renderSummaryTable(stats))

	return nil
}

// DisplayArtifacts lists the written files.
func (s *SimpleUI) DisplayArtifacts(ctx context.Context, artifacts []m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, artifact := range artifacts {
		s.colorf(s.success, "Saved %s\n", artifact)
	}
}

// DisplayCatalogStart announces the catalog pool.
func (s *SimpleUI) DisplayCatalogStart(ctx context.Context, pending int, done int, workers int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Analyzing %d repositories with %d worker(s), %d already done\n", pending, workers, done)
	s.bar = newProgressBar(s.cmd.ErrOrStderr(), pending, "Analyzing repos", "repos/s")
}

// DisplayRepoOutcome advances the progress bar and reports skips.
func (s *SimpleUI) DisplayRepoOutcome(ctx context.Context, outcome m.RepoOutcome) {
	if err := ctx.Err(); err != nil {
		return
	}

	if s.bar != nil {
		_ = s.bar.Add(1)
	}

	if outcome.Status == m.Skipped {
		s.colorf(s.warn, "Skipped %s: %v\n", outcome.Name, outcome.Err)
	}
}

// DisplayCatalog prints the ranked catalog.
func (s *SimpleUI) DisplayCatalog(ctx context.Context, catalog m.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.bar != nil {
		_ = s.bar.Finish()
		s.bar = nil
	}

	s.printf("\n%s", renderCatalogTable(catalog))
	s.printf("Done. %d repositories recorded, %d below threshold.\n", len(catalog.Repos), len(catalog.BelowThreshold))

	return nil
}

// DisplayWarning prints a highlighted diagnostic.
func (s *SimpleUI) DisplayWarning(ctx context.Context, message string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.colorf(s.warn, "%s\n", message)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) colorf(c *color.Color, format string, args ...interface{}) {
	_, _ = c.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func newProgressBar(w io.Writer, total int, description, its string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString(its),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}

type fileStat struct {
	path   string
	count  int
	failed bool
}

func buildFileStats(results []m.FileResult) []fileStat {
	stats := make([]fileStat, 0, len(results))
	for _, result := range results {
		stats = append(stats, fileStat{
			path:   string(result.Path),
			count:  len(result.Tests),
			failed: result.Err != nil,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].path < stats[j].path
	})

	return stats
}

func renderSummaryTable(stats []fileStat) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Tests"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	total := 0
	failed := 0

	for _, stat := range stats {
		count := fmt.Sprintf("%d", stat.count)
		if stat.failed {
			count = "error"
			failed++
		}

		table.Append([]string{stat.path, count})

		total += stat.count
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d (%d failed)", len(stats), failed),
		fmt.Sprintf("%d", total),
	})

	table.Render()

	return tableBuffer.String()
}

func renderCatalogTable(catalog m.Catalog) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Repository", "Stars", "Tests"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})

	for _, entry := range catalog.Repos {
		table.Append([]string{entry.Name, fmt.Sprintf("%d", entry.Stars), fmt.Sprintf("%d", entry.PropertyTestCount)})
	}

	table.Render()

	return tableBuffer.String()
}
