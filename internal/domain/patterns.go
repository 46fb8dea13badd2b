package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultMarker is the decorator name that identifies property-based tests.
const DefaultMarker = "given"

// DefaultMatchTimeout bounds a single regular-expression evaluation.
const DefaultMatchTimeout = 10 * time.Second

// ErrInvalidMarker is returned when the marker is not a plain identifier.
var ErrInvalidMarker = errors.New("marker must be a non-empty identifier")

// A decorator line is "@" followed by anything up to the end of the line.
// Argument lists and parameter lists use a bounded non-greedy repetition of
// whole lines so nested parentheses spanning several lines stay in one block.
const (
	decoratorLine = `(?:^[ \t]*@.*\n)`
	multiLineArgs = `\((?:.*\n)*?.*?\)`

	definitionPatternTemplate = `` +
		decoratorLine + `*` +
		`^[ \t]*@(?:\w+\.)*%s(?:[ \t]*` + multiLineArgs + `)?[ \t]*(?:#.*)?\r?\n` +
		decoratorLine + `*` +
		`^([ \t]*)def[ \t]+(\w+)[ \t]*` + multiLineArgs +
		`(?:[ \t]*->[ \t]*[^:\n]+?)?[ \t]*:[ \t]*(?:#.*)?\r?$`

	scopePattern = `^[ \t]*class[ \t]+(\w+)[ \t]*(?:` + multiLineArgs + `)?[ \t]*:`

	counterPatternTemplate = `@(?:\w+\.)*%s\s*\(`
)

// definitionGroups names the capture groups of the definition pattern.
const (
	groupIndent = 1
	groupName   = 2
)

func validateMarker(marker string) error {
	if marker == "" {
		return ErrInvalidMarker
	}

	for _, r := range marker {
		if r != '_' && !isASCIIAlnum(r) {
			return fmt.Errorf("%w: %q", ErrInvalidMarker, marker)
		}
	}

	return nil
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func compilePattern(pattern string, timeout time.Duration, options regexp2.RegexOptions) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, options)
	if err != nil {
		return nil, fmt.Errorf("compile pattern: %w", err)
	}

	if timeout <= 0 {
		timeout = DefaultMatchTimeout
	}

	re.MatchTimeout = timeout

	return re, nil
}

func compileDefinitionPattern(marker string, timeout time.Duration) (*regexp2.Regexp, error) {
	if err := validateMarker(marker); err != nil {
		return nil, err
	}

	return compilePattern(fmt.Sprintf(definitionPatternTemplate, marker), timeout, regexp2.Multiline)
}

func compileScopePattern(timeout time.Duration) (*regexp2.Regexp, error) {
	return compilePattern(scopePattern, timeout, regexp2.Multiline)
}

func compileCounterPattern(marker string, timeout time.Duration) (*regexp2.Regexp, error) {
	if err := validateMarker(marker); err != nil {
		return nil, err
	}

	return compilePattern(fmt.Sprintf(counterPatternTemplate, marker), timeout, regexp2.None)
}

// compileMarkerDecoratorPattern matches the text of a single decorator node.
func compileMarkerDecoratorPattern(marker string, timeout time.Duration) (*regexp2.Regexp, error) {
	if err := validateMarker(marker); err != nil {
		return nil, err
	}

	pattern := `^@\s*(?:\w+\s*\.\s*)*` + marker + `\s*(?:\(|$)`

	return compilePattern(pattern, timeout, regexp2.None)
}

// normalizeMarker trims whitespace around a configured marker and a leading "@".
func normalizeMarker(marker string) string {
	marker = strings.TrimSpace(marker)
	marker = strings.TrimPrefix(marker, "@")

	if marker == "" {
		return DefaultMarker
	}

	return marker
}
