package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// ErrTokenRequired is returned when the hosting client is built without a token.
var ErrTokenRequired = errors.New("GitHub token is required")

// RepoMetadata is the subset of hosting metadata the catalog tracks.
type RepoMetadata struct {
	Stars     int
	AvatarURL string
}

// HostingAdapter looks up repository metadata on the hosting service.
type HostingAdapter interface {
	// RepoMetadata fetches metadata for "owner/repo".
	RepoMetadata(ctx context.Context, fullName string) (RepoMetadata, error)
}

// GitHubAdapter implements HostingAdapter with the GitHub REST API.
type GitHubAdapter struct {
	client  *github.Client
	limiter *rate.Limiter
}

// NewGitHubAdapter creates an authenticated client limited to rps requests per second.
// A non-positive rps disables client-side limiting.
func NewGitHubAdapter(token string, rps float64) (*GitHubAdapter, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)

	return newGitHubAdapter(tc, rps), nil
}

func newGitHubAdapter(httpClient *http.Client, rps float64) *GitHubAdapter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	return &GitHubAdapter{
		client:  github.NewClient(httpClient),
		limiter: rate.NewLimiter(limit, 1),
	}
}

// RepoMetadata returns stargazers and the owner's avatar.
func (a *GitHubAdapter) RepoMetadata(ctx context.Context, fullName string) (RepoMetadata, error) {
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || repo == "" {
		return RepoMetadata{}, fmt.Errorf("expected owner/repo, got %q", fullName)
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return RepoMetadata{}, err
	}

	repository, _, err := a.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return RepoMetadata{}, fmt.Errorf("getting repository %s: %w", fullName, err)
	}

	return RepoMetadata{
		Stars:     repository.GetStargazersCount(),
		AvatarURL: repository.GetOwner().GetAvatarURL(),
	}, nil
}
