package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dlclark/regexp2"

	"pbtscan.dev/pkg/pbtscan/internal/adapter"
	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

// Engine names accepted by NewExtractor.
const (
	EngineRegex  = "regex"
	EngineSyntax = "syntax"
)

type syntaxExtractor struct {
	parser adapter.PythonSyntaxAdapter
	marker *regexp2.Regexp
}

// NewSyntaxExtractor builds an extractor that reads definitions from a real
// Python syntax tree. Scope names are the true enclosing class.
func NewSyntaxExtractor(opts ExtractorOptions, parser adapter.PythonSyntaxAdapter) (Extractor, error) {
	marker, err := compileMarkerDecoratorPattern(normalizeMarker(opts.Marker), opts.MatchTimeout)
	if err != nil {
		return nil, err
	}

	return &syntaxExtractor{parser: parser, marker: marker}, nil
}

// NewExtractor returns the extractor for engine.
func NewExtractor(engine string, opts ExtractorOptions, parser adapter.PythonSyntaxAdapter) (Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineRegex:
		return NewRegexExtractor(opts)
	case EngineSyntax:
		return NewSyntaxExtractor(opts, parser)
	default:
		return nil, fmt.Errorf("unknown extraction engine %q", engine)
	}
}

func (e *syntaxExtractor) Extract(ctx context.Context, unit m.SourceUnit) ([]m.ExtractedTest, error) {
	functions, err := e.parser.DecoratedFunctions(ctx, []byte(unit.Text))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", unit.Path, err)
	}

	lines := splitLinesKeepEnds(unit.Text)

	var tests []m.ExtractedTest

	for _, fn := range functions {
		marked, err := e.hasMarker(fn.Decorators)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", unit.Path, err)
		}

		if !marked || fn.DefRow >= len(lines) {
			continue
		}

		tests = append(tests, buildSyntaxTest(fn, lines))
	}

	slog.Debug("Extracted tests from syntax tree", "path", unit.Path, "count", len(tests))

	return tests, nil
}

func (e *syntaxExtractor) hasMarker(decorators []string) (bool, error) {
	for _, decorator := range decorators {
		ok, err := e.marker.MatchString(strings.TrimSpace(decorator))
		if err != nil {
			return false, fmt.Errorf("match decorator: %w", err)
		}

		if ok {
			return true, nil
		}
	}

	return false, nil
}

func buildSyntaxTest(fn adapter.DecoratedFunction, lines []string) m.ExtractedTest {
	defLine := lines[fn.DefRow]
	indent := defLine[:len(defLine)-len(strings.TrimLeft(defLine, " \t"))]

	headerEnd := fn.BodyStartRow
	if headerEnd <= fn.DefRow {
		// Body on the same line as the signature.
		headerEnd = fn.DefRow + 1
	}

	headerEnd = min(headerEnd, len(lines))
	bodyEnd := min(fn.EndRow+1, len(lines))

	var body []string
	if headerEnd < bodyEnd {
		body = trimTrailingBlank(lines[headerEnd:bodyEnd])
	}

	scope := fn.Scope
	if scope == "" {
		scope = m.GlobalScope
	}

	return m.ExtractedTest{
		Scope:     scope,
		Name:      fn.Name,
		Header:    ensureNewline(dedent(lines[fn.StartRow:headerEnd], indent)),
		Body:      ensureNewline(dedent(body, indent)),
		Indent:    indent,
		StartLine: fn.StartRow + 1,
	}
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && isBlank(lines[end-1]) {
		end--
	}

	return lines[:end]
}
