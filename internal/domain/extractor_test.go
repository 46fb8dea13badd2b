package domain

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

func newTestRegexExtractor(t *testing.T) Extractor {
	t.Helper()

	extractor, err := NewRegexExtractor(ExtractorOptions{})
	require.NoError(t, err)

	return extractor
}

func extractText(t *testing.T, extractor Extractor, text string) []m.ExtractedTest {
	t.Helper()

	tests, err := extractor.Extract(context.Background(), m.SourceUnit{Path: "sample.py", Text: text})
	require.NoError(t, err)

	return tests
}

func readFixture(t *testing.T, name string) string {
	t.Helper()

	content, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return string(content)
}

// reindent puts indent back in front of every non-empty line.
func reindent(text, indent string) string {
	var b strings.Builder

	for _, line := range splitLinesKeepEnds(text) {
		if line != "\n" {
			b.WriteString(indent)
		}

		b.WriteString(line)
	}

	return b.String()
}

func TestRegexExtractor_ClassMethod(t *testing.T) {
	source := "class Foo:\n    @given(st.integers())\n    def test_x(self, n):\n        assert n == n\n"

	tests := extractText(t, newTestRegexExtractor(t), source)
	require.Len(t, tests, 1)

	want := m.ExtractedTest{
		Scope:     "Foo",
		Name:      "test_x",
		Header:    "@given(st.integers())\ndef test_x(self, n):\n",
		Body:      "    assert n == n\n",
		Indent:    "    ",
		StartLine: 2,
	}

	if diff := cmp.Diff(want, tests[0]); diff != "" {
		t.Errorf("extracted test mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "@given(st.integers())\ndef test_x(self, n):\n\n    assert n == n\n", tests[0].SourceText())
}

func TestRegexExtractor_MultiLineDecoratorArguments(t *testing.T) {
	source := `@given(
    st.lists(
        st.integers(min_value=0),
    ),
)
def test_sorted(xs):
    assert sorted(xs) == sorted(sorted(xs))
`

	tests := extractText(t, newTestRegexExtractor(t), source)
	require.Len(t, tests, 1)

	assert.Equal(t, "test_sorted", tests[0].Name)
	assert.Equal(t, 1, tests[0].StartLine)
	assert.Equal(t, m.GlobalScope, tests[0].Scope)
	assert.Equal(t, strings.Join(strings.SplitAfter(source, "\n")[:6], ""), tests[0].Header)
	assert.Equal(t, "    assert sorted(xs) == sorted(sorted(xs))\n", tests[0].Body)
}

func TestRegexExtractor_StackedDecorators(t *testing.T) {
	source := `@settings(max_examples=10)
@given(st.integers())
@example(0)
def test_stack(n):
    assert n + 0 == n
`

	tests := extractText(t, newTestRegexExtractor(t), source)
	require.Len(t, tests, 1)

	assert.Equal(t, 1, tests[0].StartLine)
	assert.Equal(t, "@settings(max_examples=10)\n@given(st.integers())\n@example(0)\ndef test_stack(n):\n", tests[0].Header)
}

func TestRegexExtractor_BlankLinesStayInBody(t *testing.T) {
	source := `class TestBlank:
    @given(st.integers())
    def test_blank(self, n):
        x = n

        assert x == n

    def helper(self):
        pass
`

	tests := extractText(t, newTestRegexExtractor(t), source)
	require.Len(t, tests, 1)

	assert.Equal(t, "    x = n\n\n    assert x == n\n", tests[0].Body)
}

func TestRegexExtractor_TabIndentedBody(t *testing.T) {
	source := "class T:\n\t@given(st.none())\n\tdef test_tab(self, v):\n\t\tassert v is None\n\n\tdef other(self):\n\t\tpass\n"

	tests := extractText(t, newTestRegexExtractor(t), source)
	require.Len(t, tests, 1)

	assert.Equal(t, "\t", tests[0].Indent)
	assert.Equal(t, "\tassert v is None\n", tests[0].Body)
}

func TestRegexExtractor_TrailingComments(t *testing.T) {
	source := "@given(st.integers())  # note\n" +
		"@example(0) # edge\n" +
		"def test_a(n):  # header\n" +
		"    assert n >= 0 or n < 0\n"

	tests := extractText(t, newTestRegexExtractor(t), source)
	require.Len(t, tests, 1)

	assert.Equal(t, "test_a", tests[0].Name)
	assert.Equal(t, 1, tests[0].StartLine)
	assert.Equal(t, "@given(st.integers())  # note\n@example(0) # edge\ndef test_a(n):  # header\n", tests[0].Header)
	assert.Equal(t, "    assert n >= 0 or n < 0\n", tests[0].Body)

	counter, err := NewCounter(DefaultMarker, 0)
	require.NoError(t, err)

	count, err := counter.Count(source)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegexExtractor_ZeroMarkers(t *testing.T) {
	tests := extractText(t, newTestRegexExtractor(t), readFixture(t, "no_markers.py"))
	assert.Empty(t, tests)
}

func TestRegexExtractor_Fixture(t *testing.T) {
	source := readFixture(t, "test_properties.py")

	tests := extractText(t, newTestRegexExtractor(t), source)

	type summary struct {
		Scope     string
		Name      string
		StartLine int
	}

	got := make([]summary, 0, len(tests))
	for _, test := range tests {
		got = append(got, summary{Scope: test.Scope, Name: test.Name, StartLine: test.StartLine})
	}

	want := []summary{
		{Scope: m.GlobalScope, Name: "test_top_level", StartLine: 8},
		{Scope: "TestEncoding", Name: "test_roundtrip", StartLine: 19},
		{Scope: "TestEncoding", Name: "test_bytes", StartLine: 34},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("extracted tests mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, tests, 3)
	assert.Equal(t, "    if flag:\n        assert bytes(data) == data\n", tests[2].Body)
	assert.True(t, strings.HasSuffix(tests[2].Header, ") -> None:\n"))
}

func TestRegexExtractor_BlocksAreContiguousInSource(t *testing.T) {
	source := readFixture(t, "test_properties.py")

	for _, test := range extractText(t, newTestRegexExtractor(t), source) {
		block := reindent(test.Header, test.Indent) + reindent(test.Body, test.Indent)
		assert.Contains(t, source, block, "test %s", test.Name)
	}
}

func TestRegexExtractor_StructuralShape(t *testing.T) {
	source := readFixture(t, "test_properties.py")

	for _, test := range extractText(t, newTestRegexExtractor(t), source) {
		headerLines := splitLinesKeepEnds(test.Header)
		require.NotEmpty(t, headerLines)

		last := strings.TrimRight(headerLines[len(headerLines)-1], "\r\n")
		assert.True(t, strings.HasSuffix(last, ":"), "header of %s ends with %q", test.Name, last)

		for _, line := range splitLinesKeepEnds(test.Body) {
			if isBlank(line) {
				continue
			}

			assert.True(t, line[0] == ' ' || line[0] == '\t', "body line of %s not indented: %q", test.Name, line)
		}
	}
}

func TestRegexExtractor_CustomMarker(t *testing.T) {
	extractor, err := NewRegexExtractor(ExtractorOptions{Marker: "@forall"})
	require.NoError(t, err)

	source := "@given(st.integers())\ndef test_a(n):\n    pass\n\n@forall(ints)\ndef test_b(n):\n    pass\n"

	tests := extractText(t, extractor, source)
	require.Len(t, tests, 1)
	assert.Equal(t, "test_b", tests[0].Name)
}

func TestRegexExtractor_InvalidMarker(t *testing.T) {
	_, err := NewRegexExtractor(ExtractorOptions{Marker: "giv(en"})
	require.ErrorIs(t, err, ErrInvalidMarker)
}

func TestRegexExtractor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRegexExtractor(t).Extract(ctx, m.SourceUnit{
		Path: "sample.py",
		Text: "@given(st.integers())\ndef test_a(n):\n    pass\n",
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewExtractor_Engines(t *testing.T) {
	regex, err := NewExtractor("", ExtractorOptions{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &regexExtractor{}, regex)

	syntax, err := NewExtractor(" Syntax ", ExtractorOptions{}, &fakeSyntaxParser{})
	require.NoError(t, err)
	assert.IsType(t, &syntaxExtractor{}, syntax)

	_, err = NewExtractor("llm", ExtractorOptions{}, nil)
	require.Error(t, err)
}
