//go:build unit

package gitcli_test

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	"github.com/rios0rios0/diffaudit/internal/domain/repositories"
	"github.com/rios0rios0/diffaudit/internal/infrastructure/repositories/gitcli"
	"github.com/rios0rios0/diffaudit/test/infrastructure/gitfixtures"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

func TestArgs(t *testing.T) {
	t.Parallel()

	t.Run("should select the algorithm and restrict the diff to one path", func(t *testing.T) {
		t.Parallel()

		// given
		req := repositories.DiffRequest{From: "aaa", To: "bbb", Path: "pkg/deep/file.go"}

		// when
		args := gitcli.Args(entities.AlgorithmHistogram, req)

		// then
		assert.Equal(t, []string{
			"diff", "--no-color", "--no-ext-diff", "--diff-algorithm=histogram",
			"aaa", "bbb", "--", "pkg/deep/file.go",
		}, args)
	})
}

func TestDiffRepositoryDiff(t *testing.T) {
	t.Parallel()

	t.Run("should return the unified diff of one file between two revisions", func(t *testing.T) {
		t.Parallel()
		requireGit(t)

		// given
		fixture := gitfixtures.NewRepository(t)
		fixture.Write("src/app.py", "import os\nimport sys\n").Write("other.txt", "x\n")
		parent := fixture.Commit("initial")
		fixture.Write("src/app.py", "import os\nimport re\nimport sys\n").Write("other.txt", "y\n")
		child := fixture.Commit("add re")
		repository := gitcli.NewDiffRepository("")

		// when
		result := repository.Diff(context.Background(), entities.AlgorithmMyers, repositories.DiffRequest{
			RepositoryPath: fixture.Path,
			From:           parent,
			To:             child,
			Path:           "src/app.py",
		})

		// then
		require.True(t, result.OK(), result.Failure)
		assert.Equal(t, entities.AlgorithmMyers, result.Algorithm)
		assert.Contains(t, result.Text, "+import re")
		assert.NotContains(t, result.Text, "other.txt")
		assert.Equal(t, entities.DiffStats{Hunks: 1, Added: 1}, result.Stats())
	})

	t.Run("should report a failure for an unknown revision", func(t *testing.T) {
		t.Parallel()
		requireGit(t)

		// given
		fixture := gitfixtures.NewRepository(t)
		fixture.Write("a.txt", "a\n")
		head := fixture.Commit("initial")
		repository := gitcli.NewDiffRepository("git")

		// when
		result := repository.Diff(context.Background(), entities.AlgorithmHistogram, repositories.DiffRequest{
			RepositoryPath: fixture.Path,
			From:           strings.Repeat("f", 40),
			To:             head,
			Path:           "a.txt",
		})

		// then
		assert.False(t, result.OK())
		assert.Empty(t, result.Text)
		assert.Contains(t, result.Failure, "exit status")
	})

	t.Run("should report a timeout when the deadline already passed", func(t *testing.T) {
		t.Parallel()
		requireGit(t)

		// given
		fixture := gitfixtures.NewRepository(t)
		fixture.Write("a.txt", "a\n")
		head := fixture.Commit("initial")
		repository := gitcli.NewDiffRepository("git")
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		<-ctx.Done()

		// when
		result := repository.Diff(ctx, entities.AlgorithmMyers, repositories.DiffRequest{
			RepositoryPath: fixture.Path,
			From:           head,
			To:             head,
			Path:           "a.txt",
		})

		// then
		assert.False(t, result.OK())
		assert.Equal(t, "timed out", result.Failure)
	})

	t.Run("should report a failure when the binary cannot be started", func(t *testing.T) {
		t.Parallel()

		// given
		repository := gitcli.NewDiffRepository("/nonexistent/diffaudit-git")

		// when
		result := repository.Diff(context.Background(), entities.AlgorithmMyers, repositories.DiffRequest{
			RepositoryPath: t.TempDir(),
			From:           "a",
			To:             "b",
			Path:           "c",
		})

		// then
		assert.False(t, result.OK())
		assert.NotEmpty(t, result.Failure)
	})
}
