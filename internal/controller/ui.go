// Package controller provides output adapters for displaying scan and catalog results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeList StartMode = iota
	ModeCollect
	ModeCatalog
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// Mode returns the configured mode.
func (c StartConfig) Mode() StartMode {
	return c.mode
}

// WithListMode sets the UI to local listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithCollectMode sets the UI to repository collection mode.
func WithCollectMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCollect
	}
}

// WithCatalogMode sets the UI to catalog building mode.
func WithCatalogMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCatalog
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	var config StartConfig
	for _, option := range options {
		option(&config)
	}

	return config
}

// UI defines the interface for displaying workflow progress and results.
// Implementations can use different output methods (simple text, TUI, etc).
//
//nolint:interfacebloat // One method per workflow event.
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context)
	DisplayScanStart(ctx context.Context, files int, workers int)
	DisplayFileResult(ctx context.Context, result m.FileResult)
	DisplaySummary(ctx context.Context, results []m.FileResult) error
	DisplayArtifacts(ctx context.Context, artifacts []m.Path)
	DisplayCatalogStart(ctx context.Context, pending int, done int, workers int)
	DisplayRepoOutcome(ctx context.Context, outcome m.RepoOutcome)
	DisplayCatalog(ctx context.Context, catalog m.Catalog) error
	DisplayWarning(ctx context.Context, message string)
}

// NewUI returns the interactive TUI when stdout is a terminal and the
// plain SimpleUI otherwise.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
