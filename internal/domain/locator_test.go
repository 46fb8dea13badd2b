package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

func TestParseRevisionLocator(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		want      m.RevisionLocator
	}{
		{
			name:      "commit link",
			reference: "https://github.com/HypothesisWorks/hypothesis/commit/4f0e1a2b",
			want: m.RevisionLocator{
				URL:      "https://github.com/HypothesisWorks/hypothesis/commit/4f0e1a2b",
				BaseURL:  "https://github.com/HypothesisWorks/hypothesis",
				CloneURL: "https://github.com/HypothesisWorks/hypothesis.git",
				Name:     "HypothesisWorks_hypothesis",
				SHA:      "4f0e1a2b",
			},
		},
		{
			name:      "trailing slash and git suffix",
			reference: "  https://github.com/octo/widgets.git/commit/ABCDEF0123/ ",
			want: m.RevisionLocator{
				URL:      "https://github.com/octo/widgets.git/commit/ABCDEF0123/",
				BaseURL:  "https://github.com/octo/widgets",
				CloneURL: "https://github.com/octo/widgets.git",
				Name:     "octo_widgets",
				SHA:      "ABCDEF0123",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRevisionLocator(tt.reference)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRevisionLocator_Invalid(t *testing.T) {
	for _, reference := range []string{
		"",
		"https://github.com/octo/widgets",
		"https://github.com/octo/widgets/tree/main",
		"https://github.com/octo/widgets/commit/",
		"https://github.com/octo/widgets/commit/main",
		"https://github.com/octo/widgets/commit/abc/files",
		"https://gitlab.com/octo/widgets/commit/abc123",
		"https://github.com/octo/commit/abc123",
		"https://github.com/a/b/c/commit/abc123",
	} {
		t.Run(reference, func(t *testing.T) {
			_, err := ParseRevisionLocator(reference)
			require.ErrorIs(t, err, ErrInvalidLocator)
		})
	}
}

func TestRevisionLocator_Permalink(t *testing.T) {
	locator, err := ParseRevisionLocator("https://github.com/octo/widgets/commit/abc123")
	require.NoError(t, err)

	assert.Equal(t,
		"https://github.com/octo/widgets/blob/abc123/tests/test_a.py#L12",
		locator.Permalink("tests/test_a.py", 12),
	)
}
