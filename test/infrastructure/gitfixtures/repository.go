//go:build integration || unit || test

package gitfixtures //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// Repository is a throwaway working copy built commit by commit.
type Repository struct {
	t      *testing.T
	Path   string
	repo   *git.Repository
	when   time.Time
	Hashes []string
}

// NewRepository initializes an empty repository in a temporary directory.
func NewRepository(t *testing.T) *Repository {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	return &Repository{
		t:    t,
		Path: dir,
		repo: repo,
		when: time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Write creates or overwrites a file relative to the working copy root.
func (r *Repository) Write(path, content string) *Repository {
	r.t.Helper()

	full := filepath.Join(r.Path, filepath.FromSlash(path))
	require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0o750))
	require.NoError(r.t, os.WriteFile(full, []byte(content), 0o600))
	return r
}

// Remove deletes a file from the working copy.
func (r *Repository) Remove(path string) *Repository {
	r.t.Helper()

	require.NoError(r.t, os.Remove(filepath.Join(r.Path, filepath.FromSlash(path))))
	return r
}

// Commit stages everything and records a commit one minute after the previous one.
func (r *Repository) Commit(message string) string {
	r.t.Helper()
	return r.commit(message, nil)
}

// Merge records a commit with explicit parents, in order. The working copy becomes the new tree
// and HEAD moves to the new commit, so Merge also builds side branches.
func (r *Repository) Merge(message string, parents ...string) string {
	r.t.Helper()

	hashes := make([]plumbing.Hash, 0, len(parents))
	for _, parent := range parents {
		hashes = append(hashes, plumbing.NewHash(parent))
	}
	return r.commit(message, hashes)
}

func (r *Repository) commit(message string, parents []plumbing.Hash) string {
	r.t.Helper()

	worktree, err := r.repo.Worktree()
	require.NoError(r.t, err)
	//nolint:exhaustruct // stage every change
	require.NoError(r.t, worktree.AddWithOptions(&git.AddOptions{All: true}))

	r.when = r.when.Add(time.Minute)
	signature := &object.Signature{Name: "Diff Audit", Email: "diffaudit@example.com", When: r.when}
	//nolint:exhaustruct // author and committer are enough
	hash, err := worktree.Commit(message, &git.CommitOptions{
		All:       true,
		Author:    signature,
		Committer: signature,
		Parents:   parents,
	})
	require.NoError(r.t, err)

	r.Hashes = append(r.Hashes, hash.String())
	return hash.String()
}
