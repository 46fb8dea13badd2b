package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

func newTestSimpleUI() (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})

	return NewSimpleUI(cmd), &buf
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	tests := []struct {
		name         string
		results      []m.FileResult
		wantContains []string
	}{
		{
			name:         "no files",
			results:      nil,
			wantContains: []string{"total files 0 (0 failed)"},
		},
		{
			name: "counts and failures",
			results: []m.FileResult{
				{Path: "tests/test_b.py", Tests: make([]m.ExtractedTest, 3)},
				{Path: "tests/test_a.py", Tests: make([]m.ExtractedTest, 1)},
				{Path: "tests/broken.py", Err: errors.New("boom")},
			},
			wantContains: []string{"tests/test_a.py", "tests/test_b.py", "error", "total files 3 (1 failed)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, buf := newTestSimpleUI()

			if err := ui.DisplaySummary(context.Background(), tt.results); err != nil {
				t.Fatalf("DisplaySummary() error = %v", err)
			}

			got := strings.ToLower(buf.String())
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("DisplaySummary() output missing %q, got: %s", want, got)
				}
			}
		})
	}
}

func TestSimpleUI_SummaryIsSortedByPath(t *testing.T) {
	ui, buf := newTestSimpleUI()

	results := []m.FileResult{{Path: "z.py"}, {Path: "a.py"}}
	if err := ui.DisplaySummary(context.Background(), results); err != nil {
		t.Fatalf("DisplaySummary() error = %v", err)
	}

	got := buf.String()
	if strings.Index(got, "a.py") > strings.Index(got, "z.py") {
		t.Errorf("expected a.py before z.py, got: %s", got)
	}
}

func TestSimpleUI_DisplayCatalog(t *testing.T) {
	ui, buf := newTestSimpleUI()

	catalog := m.Catalog{
		Repos: []m.CatalogEntry{
			{CandidateRepo: m.CandidateRepo{Name: "octo/widgets", Stars: 42}, PropertyTestCount: 5},
		},
		BelowThreshold: []string{"octo/tiny", "octo/none"},
	}

	if err := ui.DisplayCatalog(context.Background(), catalog); err != nil {
		t.Fatalf("DisplayCatalog() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"octo/widgets", "42", "Done. 1 repositories recorded, 2 below threshold."} {
		if !strings.Contains(got, want) {
			t.Errorf("DisplayCatalog() output missing %q, got: %s", want, got)
		}
	}
}

func TestSimpleUI_Events(t *testing.T) {
	ui, buf := newTestSimpleUI()
	ctx := context.Background()

	if err := ui.Start(ctx, WithCatalogMode()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if ui.config.Mode() != ModeCatalog {
		t.Errorf("mode = %v, want ModeCatalog", ui.config.Mode())
	}

	ui.DisplayCatalogStart(ctx, 3, 2, 4)
	ui.DisplayRepoOutcome(ctx, m.RepoOutcome{Name: "a/b", Status: m.Recorded, Count: 4})
	ui.DisplayRepoOutcome(ctx, m.RepoOutcome{Name: "c/d", Status: m.Skipped, Err: errors.New("clone failed")})
	ui.DisplayWarning(ctx, "careful")
	ui.DisplayArtifacts(ctx, []m.Path{"out/o_r.pdf"})
	ui.Close(ctx)
	ui.Wait(ctx)

	got := buf.String()
	for _, want := range []string{
		"Analyzing 3 repositories with 4 worker(s), 2 already done",
		"Skipped c/d: clone failed",
		"careful",
		"Saved out/o_r.pdf",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q, got: %s", want, got)
		}
	}

	if strings.Contains(got, "a/b") {
		t.Errorf("recorded repositories are not reported individually, got: %s", got)
	}
}

func TestSimpleUI_FileErrors(t *testing.T) {
	ui, buf := newTestSimpleUI()
	ctx := context.Background()

	ui.DisplayScanStart(ctx, 2, 1)
	ui.DisplayFileResult(ctx, m.FileResult{Path: "ok.py"})
	ui.DisplayFileResult(ctx, m.FileResult{Path: "bad.py", Err: errors.New("timed out")})

	got := buf.String()
	if !strings.Contains(got, "Scanning 2 file(s) with 1 worker(s)") {
		t.Errorf("missing scan banner, got: %s", got)
	}

	if !strings.Contains(got, "Error: bad.py: timed out") {
		t.Errorf("missing file error, got: %s", got)
	}

	if strings.Contains(got, "ok.py") {
		t.Errorf("successful files are not reported individually, got: %s", got)
	}
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	ui, buf := newTestSimpleUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := ui.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Start() error = %v, want context.Canceled", err)
	}

	if err := ui.DisplaySummary(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("DisplaySummary() error = %v, want context.Canceled", err)
	}

	ui.DisplayWarning(ctx, "hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got: %s", buf.String())
	}
}
