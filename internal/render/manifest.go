package render

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

// ManifestEntry describes one extracted test in the manifest.
type ManifestEntry struct {
	Path      string `yaml:"path"`
	Scope     string `yaml:"scope"`
	Name      string `yaml:"name"`
	Line      int    `yaml:"line"`
	Permalink string `yaml:"permalink,omitempty"`
}

// Manifest is the machine-readable index written next to the documents.
type Manifest struct {
	Repository string          `yaml:"repository"`
	Revision   string          `yaml:"revision"`
	Total      int             `yaml:"total"`
	Tests      []ManifestEntry `yaml:"tests"`
}

// BuildManifest lists every test in rendering order.
func BuildManifest(groups Grouped, locator m.RevisionLocator) Manifest {
	manifest := Manifest{
		Repository: locator.BaseURL,
		Revision:   locator.SHA,
		Total:      groups.Total(),
		Tests:      []ManifestEntry{},
	}

	for _, path := range groups.Files() {
		for _, scope := range groups.Scopes(path) {
			for _, test := range groups.Tests(path, scope) {
				entry := ManifestEntry{
					Path:  string(path),
					Scope: scope,
					Name:  test.Name,
					Line:  test.StartLine,
				}

				if locator.BaseURL != "" {
					entry.Permalink = locator.Permalink(path, test.StartLine)
				}

				manifest.Tests = append(manifest.Tests, entry)
			}
		}
	}

	return manifest
}

// ManifestYAML encodes the manifest with two-space indentation.
func ManifestYAML(groups Grouped, locator m.RevisionLocator) ([]byte, error) {
	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(BuildManifest(groups, locator)); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}

	return buf.Bytes(), nil
}
