//go:build unit

package gogit_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	"github.com/rios0rios0/diffaudit/internal/domain/repositories"
	"github.com/rios0rios0/diffaudit/internal/infrastructure/repositories/gogit"
	"github.com/rios0rios0/diffaudit/test/infrastructure/gitfixtures"
)

func drain(t *testing.T, iter repositories.CommitIterator) []*entities.Commit {
	t.Helper()

	var commits []*entities.Commit
	for {
		commit, err := iter.Next(context.Background())
		if errors.Is(err, io.EOF) {
			return commits
		}
		require.NoError(t, err)
		commits = append(commits, commit)
	}
}

func kinds(commit *entities.Commit) map[string]entities.ChangeKind {
	out := make(map[string]entities.ChangeKind, len(commit.Files))
	for _, file := range commit.Files {
		out[file.Path()] = file.Kind
	}
	return out
}

func TestHistoryRepositoryOpen(t *testing.T) {
	t.Parallel()

	t.Run("should yield commits oldest first with first parent files", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := gitfixtures.NewRepository(t)
		fixture.Write("main.go", "package main\n").Write("README.md", "# demo\n")
		root := fixture.Commit("initial import")
		fixture.Write("main.go", "package main\n\nfunc main() {}\n").Write("docs/guide.md", "guide\n")
		second := fixture.Commit("add main\n\nbody")
		fixture.Remove("README.md")
		third := fixture.Commit("drop readme")
		repository := gogit.NewHistoryRepository()

		// when
		iter, err := repository.Open(context.Background(), fixture.Path, entities.OrderOldestFirst)
		require.NoError(t, err)
		defer iter.Close()
		commits := drain(t, iter)

		// then
		require.Len(t, commits, 3)
		assert.Equal(t, root, commits[0].Hash)
		assert.True(t, commits[0].IsRoot())
	assert.Empty(t, commits[0].Files)
		assert.Equal(t, second, commits[1].Hash)
		assert.Equal(t, root, commits[1].FirstParent())
		assert.Equal(t, "add main", commits[1].Title())
		assert.Equal(t, map[string]entities.ChangeKind{
			"main.go":       entities.ChangeModify,
			"docs/guide.md": entities.ChangeAdd,
		}, kinds(commits[1]))
		assert.Equal(t, third, commits[2].Hash)
		assert.Equal(t, map[string]entities.ChangeKind{
			"README.md": entities.ChangeDelete,
		}, kinds(commits[2]))
	})

	t.Run("should list merge files against the first parent and keep parent order", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := gitfixtures.NewRepository(t)
		base := fixture.Write("a.txt", "a\n").Commit("base")
		mainline := fixture.Write("a.txt", "a2\n").Commit("mainline edit")
		side := fixture.Write("side.txt", "s\n").Merge("side branch", base)
		merge := fixture.Write("a.txt", "a3\n").Merge("merge side", mainline, side)
		repository := gogit.NewHistoryRepository()

		// when
		iter, err := repository.Open(context.Background(), fixture.Path, entities.OrderOldestFirst)
		require.NoError(t, err)
		defer iter.Close()
		commits := drain(t, iter)

		// then
		var merged *entities.Commit
		for _, commit := range commits {
			if commit.Hash == merge {
				merged = commit
			}
		}
		require.NotNil(t, merged)
		assert.Equal(t, []string{mainline, side}, merged.Parents)
		assert.Equal(t, mainline, merged.FirstParent())
		assert.Equal(t, map[string]entities.ChangeKind{
			"a.txt":    entities.ChangeModify,
			"side.txt": entities.ChangeAdd,
		}, kinds(merged))
	})

	t.Run("should yield commits newest first in native order", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := gitfixtures.NewRepository(t)
		for _, content := range []string{"a\n", "b\n", "c\n"} {
			fixture.Write("file.txt", content)
			fixture.Commit("edit " + content)
		}
		repository := gogit.NewHistoryRepository()

		// when
		iter, err := repository.Open(context.Background(), fixture.Path, entities.OrderNative)
		require.NoError(t, err)
		defer iter.Close()
		commits := drain(t, iter)

		// then
		require.Len(t, commits, 3)
		assert.Equal(t, fixture.Hashes[2], commits[0].Hash)
		assert.Equal(t, fixture.Hashes[0], commits[2].Hash)
	})

	t.Run("should yield an empty history for a repository without commits", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := gitfixtures.NewRepository(t)
		repository := gogit.NewHistoryRepository()

		// when
		iter, err := repository.Open(context.Background(), fixture.Path, entities.OrderOldestFirst)

		// then
		require.NoError(t, err)
		assert.Empty(t, drain(t, iter))
		iter.Close()
	})

	t.Run("should fail with an access error for a path that is not a repository", func(t *testing.T) {
		t.Parallel()

		// given
		repository := gogit.NewHistoryRepository()

		// when
		iter, err := repository.Open(context.Background(), t.TempDir(), entities.OrderOldestFirst)

		// then
		require.Error(t, err)
		assert.Nil(t, iter)
		var accessErr *entities.RepositoryAccessError
		assert.ErrorAs(t, err, &accessErr)
	})

	t.Run("should stop pulling once the context is cancelled", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := gitfixtures.NewRepository(t)
		fixture.Write("file.txt", "a\n")
		fixture.Commit("first")
		repository := gogit.NewHistoryRepository()
		iter, err := repository.Open(context.Background(), fixture.Path, entities.OrderNative)
		require.NoError(t, err)
		defer iter.Close()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		commit, err := iter.Next(ctx)

		// then
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, commit)
	})
}
