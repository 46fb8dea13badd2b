package render

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

// fakeGroups is a fixed Grouped used across the renderer tests.
type fakeGroups map[m.Path]map[string][]m.ExtractedTest

func (g fakeGroups) Files() []m.Path {
	files := make([]m.Path, 0, len(g))
	for path := range g {
		files = append(files, path)
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files
}

func (g fakeGroups) Scopes(path m.Path) []string {
	scopes := make([]string, 0, len(g[path]))
	for scope := range g[path] {
		scopes = append(scopes, scope)
	}

	sort.Strings(scopes)

	return scopes
}

func (g fakeGroups) Tests(path m.Path, scope string) []m.ExtractedTest {
	return g[path][scope]
}

func (g fakeGroups) Total() int {
	total := 0

	for _, scopes := range g {
		for _, tests := range scopes {
			total += len(tests)
		}
	}

	return total
}

var testLocator = m.RevisionLocator{
	URL:      "https://github.com/octo/widgets/commit/abc123",
	BaseURL:  "https://github.com/octo/widgets",
	CloneURL: "https://github.com/octo/widgets.git",
	Name:     "octo_widgets",
	SHA:      "abc123",
}

func sampleGroups() fakeGroups {
	return fakeGroups{
		"tests/test_a.py": {
			m.GlobalScope: {
				{
					Scope:     m.GlobalScope,
					Name:      "test_top",
					Header:    "@given(st.integers())\ndef test_top(n):\n",
					Body:      "    assert n\n",
					StartLine: 3,
				},
			},
			"TestA": {
				{
					Scope:     "TestA",
					Name:      "test_dict",
					Header:    "@given(st.text())\ndef test_dict(self, s):\n",
					Body:      "    d = {s: 1}\n    assert d[s] == 1\n",
					Indent:    "    ",
					StartLine: 10,
				},
			},
		},
	}
}

func TestText(t *testing.T) {
	want := "# File: tests/test_a.py\n" +
		"\n## Class: (global)\n\n" +
		"@given(st.integers())\ndef test_top(n):\n\n    assert n\n\n" +
		"\n## Class: TestA\n\n" +
		"@given(st.text())\ndef test_dict(self, s):\n\n    d = {s: 1}\n    assert d[s] == 1\n\n"

	assert.Equal(t, want, Text(sampleGroups()))
}

func TestText_EmptyBody(t *testing.T) {
	groups := fakeGroups{
		"t.py": {
			m.GlobalScope: {{Name: "test_x", Header: "@given(x)\ndef test_x(): ...\n"}},
		},
	}

	assert.Equal(t, "# File: t.py\n\n## Class: (global)\n\n@given(x)\ndef test_x(): ...\n\n", Text(groups))
}

func TestText_NoTests(t *testing.T) {
	assert.Empty(t, Text(fakeGroups{}))
}
