package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

// CatalogStore persists the repository catalog between runs.
type CatalogStore interface {
	// LoadCandidates reads the dependents input file.
	LoadCandidates(ctx context.Context, path m.Path) ([]m.CandidateRepo, error)
	// LoadCatalog reads the results file. A missing file yields an empty catalog.
	LoadCatalog(ctx context.Context, path m.Path) (m.Catalog, error)
	// SaveCatalog replaces the results file atomically.
	SaveCatalog(ctx context.Context, path m.Path, catalog m.Catalog) error
}

// JSONCatalogStore stores catalogs as indented JSON files.
type JSONCatalogStore struct{}

// NewJSONCatalogStore constructs a JSONCatalogStore.
func NewJSONCatalogStore() *JSONCatalogStore {
	return &JSONCatalogStore{}
}

// LoadCandidates decodes the all_public_dependent_repos list.
func (s *JSONCatalogStore) LoadCandidates(ctx context.Context, path m.Path) ([]m.CandidateRepo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - path is operator configuration
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}

	var dependents m.DependentsFile
	if err := json.Unmarshal(data, &dependents); err != nil {
		return nil, fmt.Errorf("decode candidates %s: %w", path, err)
	}

	return dependents.Repos, nil
}

// LoadCatalog decodes the results file. Besides the {"repos": [...]} object it
// accepts a bare list of entries, the shape of files written mid-run by older
// tooling.
func (s *JSONCatalogStore) LoadCatalog(ctx context.Context, path m.Path) (m.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return m.Catalog{}, err
	}

	// #nosec G304 - path is operator configuration
	data, err := os.ReadFile(string(path))
	if errors.Is(err, os.ErrNotExist) {
		return m.Catalog{}, nil
	}

	if err != nil {
		return m.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	var catalog m.Catalog
	if err := json.Unmarshal(data, &catalog); err == nil {
		return catalog, nil
	}

	var entries []m.CatalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return m.Catalog{}, fmt.Errorf("decode catalog %s: %w", path, err)
	}

	return m.Catalog{Repos: entries}, nil
}

// SaveCatalog writes to a temporary sibling and renames it over path.
func (s *JSONCatalogStore) SaveCatalog(ctx context.Context, path m.Path, catalog m.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if catalog.Repos == nil {
		catalog.Repos = []m.CatalogEntry{}
	}

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	dir := filepath.Dir(string(path))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(string(path))+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp catalog: %w", err)
	}

	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write catalog: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close catalog: %w", err)
	}

	if err := os.Rename(tmp.Name(), string(path)); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}

	return nil
}
