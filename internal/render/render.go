// Package render turns grouped extraction results and catalogs into documents.
package render

import (
	"strings"

	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

// Grouped is a read-only view of tests grouped by file, then by scope.
// Files and Scopes return sorted keys; Tests keeps discovery order.
type Grouped interface {
	Files() []m.Path
	Scopes(path m.Path) []string
	Tests(path m.Path, scope string) []m.ExtractedTest
	Total() int
}

// Text renders the plain aggregation: a "# File:" heading per file, a
// "## Class:" heading per scope, and every test followed by a blank line.
func Text(groups Grouped) string {
	var b strings.Builder

	for _, path := range groups.Files() {
		b.WriteString("# File: " + string(path) + "\n")

		for _, scope := range groups.Scopes(path) {
			b.WriteString("\n## Class: " + scope + "\n\n")

			for _, test := range groups.Tests(path, scope) {
				b.WriteString(strings.TrimSpace(test.SourceText()))
				b.WriteString("\n\n")
			}
		}
	}

	return b.String()
}
