package domain

import (
	"sort"

	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

// Aggregation groups extracted tests by file path, then by scope name.
// Tests keep their discovery order inside a group.
type Aggregation struct {
	groups map[m.Path]map[string][]m.ExtractedTest
	total  int
}

// NewAggregation returns an empty Aggregation.
func NewAggregation() *Aggregation {
	return &Aggregation{groups: make(map[m.Path]map[string][]m.ExtractedTest)}
}

// Add records test under path.
func (a *Aggregation) Add(path m.Path, test m.ExtractedTest) {
	scopes, ok := a.groups[path]
	if !ok {
		scopes = make(map[string][]m.ExtractedTest)
		a.groups[path] = scopes
	}

	scopes[test.Scope] = append(scopes[test.Scope], test)
	a.total++
}

// AddAll records every test of result under its path.
func (a *Aggregation) AddAll(result m.FileResult) {
	for _, test := range result.Tests {
		a.Add(result.Path, test)
	}
}

// Total returns the number of tests recorded.
func (a *Aggregation) Total() int {
	return a.total
}

// Files returns the recorded paths sorted.
func (a *Aggregation) Files() []m.Path {
	files := make([]m.Path, 0, len(a.groups))
	for path := range a.groups {
		files = append(files, path)
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files
}

// Scopes returns the scope names recorded for path, sorted.
func (a *Aggregation) Scopes(path m.Path) []string {
	scopes := make([]string, 0, len(a.groups[path]))
	for scope := range a.groups[path] {
		scopes = append(scopes, scope)
	}

	sort.Strings(scopes)

	return scopes
}

// Tests returns the tests of one group in discovery order.
func (a *Aggregation) Tests(path m.Path, scope string) []m.ExtractedTest {
	return a.groups[path][scope]
}

// FileCount returns the number of tests recorded for path.
func (a *Aggregation) FileCount(path m.Path) int {
	count := 0
	for _, tests := range a.groups[path] {
		count += len(tests)
	}

	return count
}
