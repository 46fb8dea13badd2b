package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"pbtscan.dev/pkg/pbtscan/internal/controller"
	m "pbtscan.dev/pkg/pbtscan/internal/model"
	"pbtscan.dev/pkg/pbtscan/internal/render"
)

// Catalog builder defaults.
const (
	DefaultCatalogWorkers = 8
	DefaultCatalogTimeout = 5 * time.Minute
	DefaultMinTests       = 2

	cloneURLTemplate = "https://github.com/%s.git"
)

// Filter implements the catalog builder. Candidates already recorded in the
// results file are skipped; each new repository is shallow-cloned, counted
// and removed. The results file is rewritten after every analyzed repository.
func (w *workflow) Filter(ctx context.Context, args FilterArgs) error {
	counter, err := NewCounter(args.Marker, args.MatchTimeout)
	if err != nil {
		return err
	}

	candidates, err := w.LoadCandidates(ctx, args.Input)
	if err != nil {
		return fmt.Errorf("load candidates: %w", err)
	}

	catalog, err := w.LoadCatalog(ctx, args.Results)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	done := catalog.Done()
	pending := pendingCandidates(candidates, done)

	if err := w.MkdirAll(ctx, args.Cache); err != nil {
		return fmt.Errorf("create cache: %w", err)
	}

	if err := w.Start(ctx, controller.WithCatalogMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	opts := PoolOptions{Workers: args.Workers, Timeout: args.Timeout}
	if opts.Workers <= 0 {
		opts.Workers = DefaultCatalogWorkers
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultCatalogTimeout
	}

	minTests := args.MinTests
	if minTests <= 0 {
		minTests = DefaultMinTests
	}

	w.DisplayCatalogStart(ctx, len(pending), len(done), opts.Workers)

	outcomes := RunPool(ctx, pending, opts, func(taskCtx context.Context, repo m.CandidateRepo) (int, error) {
		return w.analyzeRepo(taskCtx, args.Cache, repo, counter)
	})

	for outcome := range outcomes {
		result := classify(outcome, minTests)

		switch result.Status {
		case m.Recorded:
			catalog.Repos = append(catalog.Repos, m.CatalogEntry{CandidateRepo: outcome.Item, PropertyTestCount: outcome.Value})
		case m.BelowThreshold:
			catalog.BelowThreshold = append(catalog.BelowThreshold, outcome.Item.Name)
		case m.Skipped:
			slog.Warn("Skipped repository", "name", outcome.Item.Name, "error", outcome.Err)
		}

		if result.Status != m.Skipped {
			if err := w.SaveCatalog(ctx, args.Results, catalog); err != nil {
				slog.Error("Failed to save catalog", "error", err)
			}
		}

		w.DisplayRepoOutcome(ctx, result)
	}

	SortCatalog(&catalog)

	if err := w.SaveCatalog(context.WithoutCancel(ctx), args.Results, catalog); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := w.DisplayCatalog(ctx, catalog); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

func pendingCandidates(candidates []m.CandidateRepo, done map[string]struct{}) []m.CandidateRepo {
	pending := make([]m.CandidateRepo, 0, len(candidates))
	queued := make(map[string]struct{}, len(candidates))

	for _, repo := range candidates {
		if _, ok := done[repo.Name]; ok {
			continue
		}

		if _, ok := queued[repo.Name]; ok {
			continue
		}

		queued[repo.Name] = struct{}{}
		pending = append(pending, repo)
	}

	return pending
}

func classify(outcome Outcome[m.CandidateRepo, int], minTests int) m.RepoOutcome {
	result := m.RepoOutcome{Name: outcome.Item.Name, Count: outcome.Value, Err: outcome.Err}

	switch {
	case outcome.Err != nil:
		result.Status = m.Skipped
	case outcome.Value >= minTests:
		result.Status = m.Recorded
	default:
		result.Status = m.BelowThreshold
	}

	return result
}

// analyzeRepo shallow-clones repo into the cache, counts marker decorators in
// its Python files and removes the clone again.
func (w *workflow) analyzeRepo(ctx context.Context, cache m.Path, repo m.CandidateRepo, counter Counter) (int, error) {
	if !strings.Contains(repo.Name, "/") {
		return 0, fmt.Errorf("expected owner/repo, got %q", repo.Name)
	}

	dir := w.JoinPath(ctx, string(cache), strings.ReplaceAll(repo.Name, "/", "_"))

	defer func() {
		if err := w.RemoveAll(context.WithoutCancel(ctx), dir); err != nil {
			slog.Warn("Failed to remove clone", "path", dir, "error", err)
		}
	}()

	if _, err := w.FileInfo(ctx, dir); errors.Is(err, os.ErrNotExist) {
		if err := w.ShallowClone(ctx, fmt.Sprintf(cloneURLTemplate, repo.Name), dir); err != nil {
			return 0, err
		}
	}

	count := 0

	err := w.Walk(ctx, dir, true, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil || info.IsDir() || filepath.Ext(path) != ".py" {
			return nil
		}

		unit, err := w.ReadSource(ctx, m.Path(path))
		if err != nil {
			return nil
		}

		n, err := counter.Count(unit.Text)
		if err != nil {
			slog.Debug("Count failed", "path", path, "error", err)
		}

		count += n

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", repo.Name, err)
	}

	slog.Debug("Counted property-based tests", "name", repo.Name, "count", count)

	return count, nil
}

// SortCatalog orders entries by stars, descending. Ties keep their order.
func SortCatalog(catalog *m.Catalog) {
	sort.SliceStable(catalog.Repos, func(i, j int) bool {
		return catalog.Repos[i].Stars > catalog.Repos[j].Stars
	})
}

// Enrich refreshes stars and avatars of recorded entries from the hosting
// API. Entries whose lookup fails keep their values.
func (w *workflow) Enrich(ctx context.Context, args EnrichArgs) error {
	if w.newHosting == nil {
		return errors.New("no hosting client configured")
	}

	hosting, err := w.newHosting(args.Token, args.RPS)
	if err != nil {
		return err
	}

	catalog, err := w.LoadCatalog(ctx, args.Results)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	if err := w.Start(ctx, controller.WithCatalogMode()); err != nil {
		return err
	}

	defer w.Close(ctx)

	for i := range catalog.Repos {
		entry := &catalog.Repos[i]

		meta, err := hosting.RepoMetadata(ctx, entry.Name)
		if err != nil {
			if ctx.Err() != nil {
				break
			}

			slog.Warn("Failed to fetch repository metadata", "name", entry.Name, "error", err)
			w.DisplayWarning(ctx, fmt.Sprintf("Keeping stored metadata for %s: %v", entry.Name, err))

			continue
		}

		entry.Stars = meta.Stars
		if meta.AvatarURL != "" {
			entry.Img = meta.AvatarURL
		}
	}

	SortCatalog(&catalog)

	if err := w.SaveCatalog(context.WithoutCancel(ctx), args.Results, catalog); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return w.DisplayCatalog(ctx, catalog)
}

// Table renders the catalog as Markdown.
func (w *workflow) Table(ctx context.Context, args TableArgs) error {
	catalog, err := w.LoadCatalog(ctx, args.Results)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	if err := w.WriteFile(ctx, args.Output, []byte(render.MarkdownTable(catalog)), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", args.Output, err)
	}

	slog.Info("Markdown table saved", "path", args.Output, "repos", len(catalog.Repos))
	w.DisplayArtifacts(ctx, []m.Path{args.Output})

	return nil
}
