package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/dlclark/regexp2"

	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

// ScopeScanner finds the class-like scopes opened in a source file.
type ScopeScanner interface {
	FindScopes(text string) ([]m.ScopeMarker, error)
}

type scopeScanner struct {
	pattern *regexp2.Regexp
}

// NewScopeScanner compiles the scope-opening pattern.
func NewScopeScanner(matchTimeout time.Duration) (ScopeScanner, error) {
	pattern, err := compileScopePattern(matchTimeout)
	if err != nil {
		return nil, err
	}

	return &scopeScanner{pattern: pattern}, nil
}

// FindScopes returns every scope marker of text ordered by offset.
func (s *scopeScanner) FindScopes(text string) ([]m.ScopeMarker, error) {
	return s.findScopes([]rune(text), newLineIndex(text))
}

func (s *scopeScanner) findScopes(runes []rune, idx *lineIndex) ([]m.ScopeMarker, error) {
	var scopes []m.ScopeMarker

	match, err := s.pattern.FindRunesMatch(runes)
	for match != nil {
		scopes = append(scopes, m.ScopeMarker{
			Offset: idx.byteOffset(match.Index),
			Name:   match.GroupByNumber(1).String(),
		})

		match, err = s.pattern.FindNextMatch(match)
	}

	if err != nil {
		return nil, fmt.Errorf("scan scopes: %w", err)
	}

	return scopes, nil
}

// EnclosingScope returns the name of the marker with the greatest offset
// strictly less than offset, or m.GlobalScope when none precedes it.
func EnclosingScope(scopes []m.ScopeMarker, offset int) string {
	i := sort.Search(len(scopes), func(i int) bool {
		return scopes[i].Offset >= offset
	})

	if i == 0 {
		return m.GlobalScope
	}

	return scopes[i-1].Name
}
