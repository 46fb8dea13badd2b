package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

// VCSAdapter is the version-control client used to materialize repositories.
// Every method either leaves a complete working tree or returns an error; the
// caller abandons the repository on error.
type VCSAdapter interface {
	// Sync clones url into dst when dst does not exist, otherwise fetches.
	Sync(ctx context.Context, url string, dst m.Path) error

	// Checkout moves the working tree at dst to revision and returns the
	// resolved full commit hash.
	Checkout(ctx context.Context, dst m.Path, revision string) (string, error)

	// ShallowClone clones the tip of the default branch of url into dst.
	ShallowClone(ctx context.Context, url string, dst m.Path) error
}

// GoGitAdapter implements VCSAdapter with go-git.
type GoGitAdapter struct{}

// NewGoGitAdapter constructs a GoGitAdapter.
func NewGoGitAdapter() *GoGitAdapter {
	return &GoGitAdapter{}
}

// Sync clones or fetches the repository at dst.
func (a *GoGitAdapter) Sync(ctx context.Context, url string, dst m.Path) error {
	if _, err := os.Stat(string(dst)); errors.Is(err, os.ErrNotExist) {
		slog.Info("Cloning repository", "url", url, "path", dst)

		_, err := git.PlainCloneContext(ctx, string(dst), false, &git.CloneOptions{URL: url})
		if err != nil {
			return fmt.Errorf("clone %s: %w", url, err)
		}

		return nil
	}

	slog.Info("Repository already exists, fetching updates", "path", dst)

	repo, err := git.PlainOpen(string(dst))
	if err != nil {
		return fmt.Errorf("open %s: %w", dst, err)
	}

	err = repo.FetchContext(ctx, &git.FetchOptions{RemoteName: git.DefaultRemoteName, Force: true})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("fetch %s: %w", dst, err)
	}

	return nil
}

// Checkout resolves revision (full or abbreviated) and checks it out.
func (a *GoGitAdapter) Checkout(ctx context.Context, dst m.Path, revision string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	repo, err := git.PlainOpen(string(dst))
	if err != nil {
		return "", fmt.Errorf("open %s: %w", dst, err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", revision, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("worktree %s: %w", dst, err)
	}

	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		return "", fmt.Errorf("checkout %s: %w", hash, err)
	}

	return hash.String(), nil
}

// ShallowClone performs a depth-1 single-branch clone.
func (a *GoGitAdapter) ShallowClone(ctx context.Context, url string, dst m.Path) error {
	_, err := git.PlainCloneContext(ctx, string(dst), false, &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	})
	if err != nil {
		return fmt.Errorf("shallow clone %s: %w", url, err)
	}

	return nil
}
