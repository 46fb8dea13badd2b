package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

// Extractor locates property-based test definitions in one source file.
type Extractor interface {
	Extract(ctx context.Context, unit m.SourceUnit) ([]m.ExtractedTest, error)
}

// ExtractorOptions configures both extraction engines.
type ExtractorOptions struct {
	Marker       string
	MatchTimeout time.Duration
}

type regexExtractor struct {
	definition *regexp2.Regexp
	scopes     *scopeScanner
}

// NewRegexExtractor builds the indentation-driven heuristic extractor.
func NewRegexExtractor(opts ExtractorOptions) (Extractor, error) {
	definition, err := compileDefinitionPattern(normalizeMarker(opts.Marker), opts.MatchTimeout)
	if err != nil {
		return nil, err
	}

	scopePattern, err := compileScopePattern(opts.MatchTimeout)
	if err != nil {
		return nil, err
	}

	return &regexExtractor{
		definition: definition,
		scopes:     &scopeScanner{pattern: scopePattern},
	}, nil
}

// Extract returns the tests of unit in order of appearance.
func (e *regexExtractor) Extract(ctx context.Context, unit m.SourceUnit) ([]m.ExtractedTest, error) {
	runes := []rune(unit.Text)
	idx := newLineIndex(unit.Text)

	scopes, err := e.scopes.findScopes(runes, idx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", unit.Path, err)
	}

	var tests []m.ExtractedTest

	match, err := e.definition.FindRunesMatch(runes)
	for match != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		tests = append(tests, e.buildTest(match, idx, scopes))

		match, err = e.definition.FindNextMatch(match)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: match definitions: %w", unit.Path, err)
	}

	slog.Debug("Extracted tests", "path", unit.Path, "count", len(tests), "scopes", len(scopes))

	return tests, nil
}

func (e *regexExtractor) buildTest(match *regexp2.Match, idx *lineIndex, scopes []m.ScopeMarker) m.ExtractedTest {
	indent := match.GroupByNumber(groupIndent).String()
	startLine := idx.lineOf(match.Index)
	headerEnd := idx.lineOf(match.Index + match.Length)

	header := idx.lines[startLine : headerEnd+1]
	body := collectBody(idx.lines, headerEnd+1, indent)

	return m.ExtractedTest{
		Scope:     EnclosingScope(scopes, idx.byteOffset(match.Index)),
		Name:      match.GroupByNumber(groupName).String(),
		Header:    ensureNewline(dedent(header, indent)),
		Body:      ensureNewline(dedent(body, indent)),
		Indent:    indent,
		StartLine: startLine + 1,
	}
}

// collectBody returns the lines from start that are blank or indented deeper
// than indent, without trailing blank lines.
func collectBody(lines []string, start int, indent string) []string {
	end := start
	for end < len(lines) {
		line := lines[end]
		if !isBlank(line) && !strings.HasPrefix(line, indent+" ") && !strings.HasPrefix(line, indent+"\t") {
			break
		}

		end++
	}

	return trimTrailingBlank(lines[start:end])
}
