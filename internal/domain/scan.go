package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"pbtscan.dev/pkg/pbtscan/internal/controller"
	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

// DefaultFileTimeout bounds extraction of a single file.
const DefaultFileTimeout = 30 * time.Second

// List implements the local listing workflow: discover, extract, display.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	_, results, err := w.scan(ctx, args.ScanArgs, args.Paths)
	if err != nil {
		slog.Error("Failed to scan sources", "error", err)
		return fmt.Errorf("scan: %w", err)
	}

	if err := w.DisplaySummary(ctx, results); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

// scan discovers files below paths and extracts them on a bounded pool. Failed
// and timed-out files are reported and excluded from the aggregation.
func (w *workflow) scan(ctx context.Context, args ScanArgs, paths []m.Path) (*Aggregation, []m.FileResult, error) {
	discovery, err := NewDiscovery(w.SourceFSAdapter, args.Discovery)
	if err != nil {
		return nil, nil, err
	}

	extractor, err := NewExtractor(args.Engine, args.Extractor, w.syntax)
	if err != nil {
		return nil, nil, err
	}

	files, err := discovery.Discover(ctx, paths)
	if err != nil {
		return nil, nil, fmt.Errorf("discover sources: %w", err)
	}

	opts := PoolOptions{Workers: args.Parallel, Timeout: args.FileTimeout}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultFileTimeout
	}

	w.DisplayScanStart(ctx, len(files), opts.Workers)

	aggregation := NewAggregation()
	results := make([]m.FileResult, 0, len(files))

	outcomes := RunPool(ctx, files, opts, func(taskCtx context.Context, file m.File) ([]m.ExtractedTest, error) {
		unit, err := w.ReadSource(taskCtx, file.FullPath)
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}

		unit.Path = file.ShortPath

		return extractor.Extract(taskCtx, unit)
	})

	for outcome := range outcomes {
		result := m.FileResult{Path: outcome.Item.ShortPath, Tests: outcome.Value, Err: outcome.Err}

		switch {
		case errors.Is(result.Err, ErrTaskTimeout):
			slog.Warn("Timeout: skipped file", "path", result.Path, "error", result.Err)

			result.Tests = nil
		case result.Err != nil:
			slog.Warn("Failed to extract file", "path", result.Path, "error", result.Err)

			result.Tests = nil
		default:
			aggregation.AddAll(result)
		}

		results = append(results, result)
		w.DisplayFileResult(ctx, result)
	}

	if err := ctx.Err(); err != nil {
		return aggregation, results, err
	}

	slog.Info("Scan complete", "files", len(files), "tests", aggregation.Total())

	return aggregation, results, nil
}
