// Package adapter contains infrastructure adapters for the pbtscan CLI.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning repositories. It hides direct `os` access so the
// workflow logic can be tested without touching the disk.
//
//nolint:interfacebloat // A richer interface keeps workflow logic decoupled from os/fs.
type SourceFSAdapter interface {
	// Walk traverses the provided root path. When recursive is false the
	// implementation limits itself to the root directory (no sub-dirs).
	Walk(ctx context.Context, root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadSource loads a file as text. Invalid UTF-8 bytes are dropped.
	ReadSource(ctx context.Context, path m.Path) (m.SourceUnit, error)

	// FileInfo returns metadata for a path.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)

	// IgnoreRules loads the .gitignore at root. A missing file yields nil rules.
	IgnoreRules(ctx context.Context, root m.Path) (PathMatcher, error)

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(ctx context.Context, path m.Path) error

	// WriteFile writes content to a file with the given permissions.
	WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error

	// RemoveAll removes a directory and all its contents.
	RemoveAll(ctx context.Context, path m.Path) error

	// RelPath returns the relative path from base to target.
	RelPath(ctx context.Context, base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(ctx context.Context, elem ...string) m.Path
}

// PathMatcher reports whether a slash-separated relative path is matched.
type PathMatcher interface {
	MatchesPath(path string) bool
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type into the domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Walk iterates over files under root, optionally descending into subdirectories.
// Version-control metadata directories are never entered.
func (a *LocalSourceFSAdapter) Walk(ctx context.Context, root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && path != rootStr {
			if !recursive || info.Name() == ".git" {
				return filepath.SkipDir
			}
		}

		return fn(path, info, nil)
	})
}

// ReadSource loads file contents from disk with lenient decoding.
func (a *LocalSourceFSAdapter) ReadSource(ctx context.Context, path m.Path) (m.SourceUnit, error) {
	if err := ctx.Err(); err != nil {
		return m.SourceUnit{}, err
	}

	// #nosec G304 - path comes from a walk of the scanned repository
	content, err := os.ReadFile(string(path))
	if err != nil {
		return m.SourceUnit{}, err
	}

	return m.SourceUnit{Path: path, Text: strings.ToValidUTF8(string(content), "")}, nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(string(path))
}

// IgnoreRules compiles root/.gitignore.
func (a *LocalSourceFSAdapter) IgnoreRules(ctx context.Context, root m.Path) (PathMatcher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(string(root), ".gitignore")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}

	rules, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}

	return rules, nil
}

// MkdirAll creates path and its parents.
func (a *LocalSourceFSAdapter) MkdirAll(ctx context.Context, path m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.MkdirAll(string(path), 0o750)
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

// RemoveAll removes a directory and all its contents.
func (a *LocalSourceFSAdapter) RemoveAll(ctx context.Context, path m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.RemoveAll(string(path))
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(ctx context.Context, base, target m.Path) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(_ context.Context, elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
