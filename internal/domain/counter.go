package domain

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// Counter counts property-test decorators without extracting them.
type Counter interface {
	Count(text string) (int, error)
}

type counter struct {
	pattern *regexp2.Regexp
}

// NewCounter compiles the decorator-call pattern for marker.
func NewCounter(marker string, matchTimeout time.Duration) (Counter, error) {
	pattern, err := compileCounterPattern(normalizeMarker(marker), matchTimeout)
	if err != nil {
		return nil, err
	}

	return &counter{pattern: pattern}, nil
}

// Count returns the number of "@marker(" occurrences, optionally dotted.
func (c *counter) Count(text string) (int, error) {
	count := 0

	match, err := c.pattern.FindStringMatch(text)
	for match != nil {
		count++

		match, err = c.pattern.FindNextMatch(match)
	}

	if err != nil {
		return count, fmt.Errorf("count decorators: %w", err)
	}

	return count, nil
}
