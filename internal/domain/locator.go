package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

// ErrInvalidLocator is returned for references that do not point at a commit.
var ErrInvalidLocator = errors.New("reference must be a link to a specific commit")

const (
	commitSeparator = "/commit/"
	githubHost      = "github.com"
)

// ParseRevisionLocator parses https://github.com/<owner>/<repo>/commit/<sha>.
func ParseRevisionLocator(reference string) (m.RevisionLocator, error) {
	reference = strings.TrimSpace(reference)

	base, sha, ok := strings.Cut(reference, commitSeparator)
	if !ok {
		return m.RevisionLocator{}, fmt.Errorf("%w: %q", ErrInvalidLocator, reference)
	}

	sha = strings.Trim(sha, "/")
	if sha == "" || strings.ContainsAny(sha, "/?#") || !isHex(sha) {
		return m.RevisionLocator{}, fmt.Errorf("%w: bad revision %q", ErrInvalidLocator, sha)
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return m.RevisionLocator{}, fmt.Errorf("%w: %v", ErrInvalidLocator, err)
	}

	if !strings.EqualFold(parsed.Host, githubHost) {
		return m.RevisionLocator{}, fmt.Errorf("%w: unsupported host %q", ErrInvalidLocator, parsed.Host)
	}

	parts := strings.Split(strings.Trim(strings.TrimSuffix(parsed.Path, ".git"), "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return m.RevisionLocator{}, fmt.Errorf("%w: expected owner/repo in %q", ErrInvalidLocator, parsed.Path)
	}

	baseURL := "https://" + githubHost + "/" + parts[0] + "/" + parts[1]

	return m.RevisionLocator{
		URL:      reference,
		BaseURL:  baseURL,
		CloneURL: baseURL + ".git",
		Name:     parts[0] + "_" + parts[1],
		SHA:      sha,
	}, nil
}

func isHex(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}

	return true
}
