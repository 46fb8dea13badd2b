package adapter

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// DefaultTypesetter is the engine used to render LaTeX documents.
const DefaultTypesetter = "pdflatex"

// TypesetterAdapter abstracts the typesetting engine.
type TypesetterAdapter interface {
	// Typeset renders texPath into outputDir.
	// Returns the combined stdout/stderr output and any error.
	Typeset(ctx context.Context, texPath, outputDir string) (output string, err error)

	// ManualCommand returns the command line a user can run to retry by hand.
	ManualCommand(texPath, outputDir string) string
}

// LocalTypesetterAdapter runs a LaTeX engine binary with os/exec.
type LocalTypesetterAdapter struct {
	binary  string
	timeout time.Duration
}

// NewLocalTypesetterAdapter constructs a LocalTypesetterAdapter with a 2 minute timeout.
func NewLocalTypesetterAdapter(binary string) *LocalTypesetterAdapter {
	if binary == "" {
		binary = DefaultTypesetter
	}

	return &LocalTypesetterAdapter{
		binary:  binary,
		timeout: 2 * time.Minute,
	}
}

// Typeset runs the engine in non-interactive mode.
func (a *LocalTypesetterAdapter) Typeset(ctx context.Context, texPath, outputDir string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	// #nosec G204 - binary is operator configuration
	cmd := exec.CommandContext(ctx, a.binary,
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory", outputDir,
		texPath,
	)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	output := stdout.String() + stderr.String()

	return output, err
}

// ManualCommand returns the equivalent shell command.
func (a *LocalTypesetterAdapter) ManualCommand(texPath, outputDir string) string {
	return a.binary + " -output-directory=" + outputDir + " " + texPath
}
