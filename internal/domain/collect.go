package domain

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"pbtscan.dev/pkg/pbtscan/internal/controller"
	m "pbtscan.dev/pkg/pbtscan/internal/model"
	"pbtscan.dev/pkg/pbtscan/internal/render"
)

// Typesetter leftovers removed from the output directory after compiling.
var auxiliaryExtensions = []string{".aux", ".log", ".out"}

// Collect implements the single-commit workflow: materialize the revision,
// extract its property-based tests and write the documents.
func (w *workflow) Collect(ctx context.Context, args CollectArgs) error {
	locator, err := ParseRevisionLocator(args.Reference)
	if err != nil {
		return err
	}

	if err := w.Start(ctx, controller.WithCollectMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	slog.Info("Processing repository", "name", locator.Name, "revision", locator.SHA)

	repoPath, locator, err := w.materialize(ctx, args.Cache, locator)
	if err != nil {
		slog.Error("Failed to materialize repository", "name", locator.Name, "error", err)
		return err
	}

	scanArgs := args.ScanArgs
	scanArgs.Discovery.RequireTestPath = true

	aggregation, results, err := w.scan(ctx, scanArgs, []m.Path{repoPath + "/" + recursiveSuffix})
	if err != nil {
		slog.Error("Failed to scan repository", "name", locator.Name, "error", err)
		return fmt.Errorf("scan: %w", err)
	}

	if err := w.DisplaySummary(ctx, results); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	artifacts, err := w.writeArtifacts(ctx, args, locator, aggregation)
	if err != nil {
		slog.Error("Failed to write artifacts", "name", locator.Name, "error", err)
		return err
	}

	w.DisplayArtifacts(ctx, artifacts)
	slog.Info("Extracted property-based tests", "name", locator.Name, "tests", aggregation.Total())

	w.Wait(ctx)

	return nil
}

// materialize clones or fetches the repository into the cache and checks out
// the locator's revision. The returned locator carries the full resolved hash.
func (w *workflow) materialize(ctx context.Context, cache m.Path, locator m.RevisionLocator) (m.Path, m.RevisionLocator, error) {
	if err := w.MkdirAll(ctx, cache); err != nil {
		return "", locator, fmt.Errorf("create cache: %w", err)
	}

	repoPath := w.JoinPath(ctx, string(cache), locator.Name)

	if err := w.Sync(ctx, locator.CloneURL, repoPath); err != nil {
		return "", locator, fmt.Errorf("sync %s: %w", locator.Name, err)
	}

	resolved, err := w.Checkout(ctx, repoPath, locator.SHA)
	if err != nil {
		return "", locator, fmt.Errorf("checkout %s: %w", locator.SHA, err)
	}

	slog.Debug("Checked out revision", "name", locator.Name, "revision", resolved)

	if resolved != "" {
		locator.SHA = resolved
	}

	return repoPath, locator, nil
}

// writeArtifacts writes the text aggregation, manifest and LaTeX source into
// <output>/<name>/ and typesets the PDF into <output>/. A typesetting failure
// is reported with a manual command and does not fail the workflow.
func (w *workflow) writeArtifacts(ctx context.Context, args CollectArgs, locator m.RevisionLocator, groups *Aggregation) ([]m.Path, error) {
	outDir := w.JoinPath(ctx, string(args.Output), locator.Name)
	if err := w.MkdirAll(ctx, outDir); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	textPath := w.JoinPath(ctx, string(outDir), locator.Name+".py")
	if err := w.WriteFile(ctx, textPath, []byte(render.Text(groups)), 0o600); err != nil {
		return nil, fmt.Errorf("write %s: %w", textPath, err)
	}

	manifest, err := render.ManifestYAML(groups, locator)
	if err != nil {
		return nil, err
	}

	manifestPath := w.JoinPath(ctx, string(outDir), locator.Name+".yaml")
	if err := w.WriteFile(ctx, manifestPath, manifest, 0o600); err != nil {
		return nil, fmt.Errorf("write %s: %w", manifestPath, err)
	}

	artifacts := []m.Path{textPath, manifestPath}

	texPath := w.JoinPath(ctx, string(outDir), locator.Name+".tex")
	pdfPath := w.JoinPath(ctx, string(args.Output), locator.Name+".pdf")

	_ = w.RemoveAll(ctx, pdfPath)

	var tex bytes.Buffer
	if err := render.NewLaTeX(args.Style).Render(&tex, groups, locator); err != nil {
		w.reportTypesetFailure(ctx, err, texPath, args.Output)
		return artifacts, nil
	}

	if err := w.WriteFile(ctx, texPath, tex.Bytes(), 0o600); err != nil {
		return nil, fmt.Errorf("write %s: %w", texPath, err)
	}

	artifacts = append(artifacts, texPath)

	output, err := w.Typeset(ctx, string(texPath), string(args.Output))
	if err != nil {
		slog.Debug("Typesetter output", "output", output)
		w.reportTypesetFailure(ctx, err, texPath, args.Output)

		return artifacts, nil
	}

	for _, ext := range auxiliaryExtensions {
		_ = w.RemoveAll(ctx, w.JoinPath(ctx, string(args.Output), locator.Name+ext))
	}

	return append(artifacts, pdfPath), nil
}

func (w *workflow) reportTypesetFailure(ctx context.Context, err error, texPath, outputDir m.Path) {
	slog.Error("Failed to generate PDF", "tex", texPath, "error", err)
	w.DisplayWarning(ctx, fmt.Sprintf("Failed to generate PDF: %v", err))
	w.DisplayWarning(ctx, "You can compile manually with: "+w.ManualCommand(string(texPath), string(outputDir)))
}
