package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/gobwas/glob"

	"pbtscan.dev/pkg/pbtscan/internal/adapter"
	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

// DefaultIncludePattern selects Python sources anywhere below the root.
const DefaultIncludePattern = "**.py"

const recursiveSuffix = "..."

// DiscoveryOptions filters the files handed to the extraction pool.
type DiscoveryOptions struct {
	Include          []string // glob patterns over the slash-separated relative path
	Exclude          []string // regular expressions over the relative path
	RequireTestPath  bool     // keep only paths containing "test", case-insensitively
	RespectGitignore bool
	MatchTimeout     time.Duration
}

// Discovery finds candidate source files below one or more roots.
type Discovery interface {
	Discover(ctx context.Context, paths []m.Path) ([]m.File, error)
}

type discovery struct {
	adapter.SourceFSAdapter

	include         []glob.Glob
	exclude         []*regexp2.Regexp
	requireTestPath bool
	gitignore       bool
}

// NewDiscovery compiles the include globs and exclude expressions of opts.
func NewDiscovery(fsAdapter adapter.SourceFSAdapter, opts DiscoveryOptions) (Discovery, error) {
	patterns := opts.Include
	if len(patterns) == 0 {
		patterns = []string{DefaultIncludePattern}
	}

	d := &discovery{
		SourceFSAdapter: fsAdapter,
		requireTestPath: opts.RequireTestPath,
		gitignore:       opts.RespectGitignore,
	}

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("include pattern %q: %w", pattern, err)
		}

		d.include = append(d.include, g)
	}

	for _, pattern := range opts.Exclude {
		re, err := compilePattern(pattern, opts.MatchTimeout, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}

		d.exclude = append(d.exclude, re)
	}

	return d, nil
}

// Discover walks every path. A path ending in "/..." is walked recursively,
// a plain directory only at its top level, and a file is taken as is.
// No paths means the current directory, recursively.
func (d *discovery) Discover(ctx context.Context, paths []m.Path) ([]m.File, error) {
	if len(paths) == 0 {
		paths = []m.Path{m.Path("./" + recursiveSuffix)}
	}

	var files []m.File

	seen := make(map[m.Path]struct{})

	for _, path := range paths {
		root, recursive := splitPathPattern(path)

		found, err := d.discoverRoot(ctx, root, recursive)
		if err != nil {
			return nil, err
		}

		for _, file := range found {
			if _, ok := seen[file.FullPath]; ok {
				continue
			}

			seen[file.FullPath] = struct{}{}
			files = append(files, file)
		}
	}

	slog.Debug("Discovered source files", "count", len(files))

	return files, nil
}

func splitPathPattern(path m.Path) (m.Path, bool) {
	p := string(path)
	if p == recursiveSuffix {
		return ".", true
	}

	if strings.HasSuffix(p, "/"+recursiveSuffix) {
		root := strings.TrimSuffix(p, "/"+recursiveSuffix)
		if root == "" {
			root = "/"
		}

		return m.Path(root), true
	}

	return path, false
}

func (d *discovery) discoverRoot(ctx context.Context, root m.Path, recursive bool) ([]m.File, error) {
	info, err := d.FileInfo(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	if !info.IsDir() {
		short := m.Path(filepath.ToSlash(filepath.Base(string(root))))
		if !d.accepts(string(short), nil) {
			return nil, nil
		}

		return []m.File{{FullPath: root, ShortPath: short}}, nil
	}

	var rules adapter.PathMatcher
	if d.gitignore {
		rules, err = d.IgnoreRules(ctx, root)
		if err != nil {
			slog.Warn("Ignoring unreadable .gitignore", "root", root, "error", err)
		}
	}

	var files []m.File

	err = d.Walk(ctx, root, recursive, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			slog.Warn("Skipping unreadable path", "path", path, "error", walkErr)
			return nil
		}

		if info.IsDir() {
			return nil
		}

		rel, err := d.RelPath(ctx, root, m.Path(path))
		if err != nil {
			return err
		}

		short := filepath.ToSlash(string(rel))
		if !d.accepts(short, rules) {
			return nil
		}

		files = append(files, m.File{FullPath: m.Path(path), ShortPath: m.Path(short)})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}

func (d *discovery) accepts(short string, rules adapter.PathMatcher) bool {
	if !d.included(short) {
		return false
	}

	if d.requireTestPath && !strings.Contains(strings.ToLower(short), "test") {
		return false
	}

	for _, re := range d.exclude {
		if ok, err := re.MatchString(short); err == nil && ok {
			return false
		}
	}

	if rules != nil && rules.MatchesPath(short) {
		return false
	}

	return true
}

func (d *discovery) included(short string) bool {
	for _, g := range d.include {
		if g.Match(short) {
			return true
		}
	}

	return false
}
