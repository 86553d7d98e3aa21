//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/diffaudit/internal/domain/commands"
	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	"github.com/rios0rios0/diffaudit/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/diffaudit/test/infrastructure/repositorydoubles"
)

func newSettings(repositories ...entities.Repository) *entities.Settings {
	settings := entities.DefaultSettings(repositories...)
	settings.Workers = 4
	return settings
}

func TestAnalyzeCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should produce one record per MODIFY file of every non-root commit", func(t *testing.T) {
		t.Parallel()

		// given
		history := &doubles.StubHistoryRepository{
			Histories: map[string][]*entities.Commit{
				"repositories/httpie": entitybuilders.LinearHistory(4, "httpie/core.py", "tests/test_core.py"),
			},
		}
		differ := &doubles.StubDiffRepository{
			Texts: map[entities.Algorithm]string{
				entities.AlgorithmMyers:     "-a\n+b\n",
				entities.AlgorithmHistogram: "-a\n+b\n",
			},
		}
		dataset := &doubles.SpyDatasetRepository{}
		cmd := commands.NewAnalyzeCommand(history, differ.Factory(), dataset, &doubles.DummyMetricsRepository{})

		// when
		report, err := cmd.Execute(context.Background(), newSettings(entities.Repository{Path: "repositories/httpie"}))

		// then
		require.NoError(t, err)
		assert.Len(t, dataset.Written, 6)
		assert.Equal(t, 6, report.Stats.TotalFiles)
		assert.Zero(t, report.Stats.TotalDiscrepancies)
		require.Len(t, report.Repositories, 1)
		assert.Equal(t, 3, report.Repositories[0].CommitsVisited)
		assert.Equal(t, 6, report.Repositories[0].Records)
		assert.Empty(t, report.Failed())
		assert.Len(t, differ.CallsFor(entities.AlgorithmMyers), 6)
		assert.Len(t, differ.CallsFor(entities.AlgorithmHistogram), 6)
		assert.True(t, dataset.Closed)
		assert.Equal(t, entities.DefaultDatasetPath, dataset.DatasetPath)
		assert.Equal(t, entities.DefaultSummaryPath, dataset.SummaryPath)
	})

	t.Run("should request each diff against the first parent with the full path", func(t *testing.T) {
		t.Parallel()

		// given
		history := &doubles.StubHistoryRepository{
			Histories: map[string][]*entities.Commit{
				"repo": entitybuilders.LinearHistory(2, "pkg/deep/file.go"),
			},
		}
		differ := &doubles.StubDiffRepository{}
		cmd := commands.NewAnalyzeCommand(history, differ.Factory(), &doubles.SpyDatasetRepository{}, &doubles.DummyMetricsRepository{})

		// when
		_, err := cmd.Execute(context.Background(), newSettings(entities.Repository{Path: "repo"}))

		// then
		require.NoError(t, err)
		calls := differ.CallsFor(entities.AlgorithmHistogram)
		require.Len(t, calls, 1)
		assert.Equal(t, "repo", calls[0].Request.RepositoryPath)
		assert.Equal(t, entitybuilders.HashAt(0), calls[0].Request.From)
		assert.Equal(t, entitybuilders.HashAt(1), calls[0].Request.To)
		assert.Equal(t, "pkg/deep/file.go", calls[0].Request.Path)
		assert.True(t, calls[0].Deadline)
	})

	t.Run("should flag discrepancies only where normalized texts differ", func(t *testing.T) {
		t.Parallel()

		// given
		history := &doubles.StubHistoryRepository{
			Histories: map[string][]*entities.Commit{
				"repo": entitybuilders.LinearHistory(2, "same.go", "moved.go", "README.md"),
			},
		}
		differ := &doubles.StubDiffRepository{
			ByPath: map[string]map[entities.Algorithm]string{
				"same.go": {
					entities.AlgorithmMyers:     "-x\n+y\n",
					entities.AlgorithmHistogram: "-x\n+y\n  \n",
				},
				"moved.go": {
					entities.AlgorithmMyers:     "-a\n+b\n c\n",
					entities.AlgorithmHistogram: " c\n-a\n+b\n",
				},
				"README.md": {
					entities.AlgorithmMyers:     "+docs\n",
					entities.AlgorithmHistogram: "+Docs\n",
				},
			},
		}
		dataset := &doubles.SpyDatasetRepository{}
		cmd := commands.NewAnalyzeCommand(history, differ.Factory(), dataset, &doubles.DummyMetricsRepository{})

		// when
		report, err := cmd.Execute(context.Background(), newSettings(entities.Repository{Path: "repo"}))

		// then
		require.NoError(t, err)
		byPath := map[string]entities.Record{}
		for _, record := range dataset.Written {
			byPath[record.FilePath] = record
		}
		assert.False(t, byPath["same.go"].Discrepancy)
		assert.True(t, byPath["moved.go"].Discrepancy)
		assert.True(t, byPath["README.md"].Discrepancy)
		assert.Equal(t, 1, report.Stats.Count(entities.CategorySource))
		assert.Equal(t, 1, report.Stats.Count(entities.CategoryReadme))
		assert.Equal(t, 2, report.Stats.TotalDiscrepancies)
		require.NotNil(t, dataset.Summary)
		assert.Equal(t, report.Stats, *dataset.Summary)
	})

	t.Run("should keep a timed out invocation as an incomplete record", func(t *testing.T) {
		t.Parallel()

		// given
		history := &doubles.StubHistoryRepository{
			Histories: map[string][]*entities.Commit{
				"repo": entitybuilders.LinearHistory(2, "slow.go"),
			},
		}
		differ := &doubles.StubDiffRepository{
			Texts:           map[entities.Algorithm]string{entities.AlgorithmMyers: "-a\n+b\n"},
			WaitForDeadline: map[entities.Algorithm]bool{entities.AlgorithmHistogram: true},
		}
		dataset := &doubles.SpyDatasetRepository{}
		cmd := commands.NewAnalyzeCommand(history, differ.Factory(), dataset, &doubles.DummyMetricsRepository{})
		settings := newSettings(entities.Repository{Path: "repo"})
		settings.DiffTimeout = 20 * time.Millisecond

		// when
		report, err := cmd.Execute(context.Background(), settings)

		// then
		require.NoError(t, err)
		require.Len(t, dataset.Written, 1)
		record := dataset.Written[0]
		assert.Equal(t, "-a\n+b\n", record.MyersSnippet)
		assert.Empty(t, record.HistogramSnippet)
		assert.Equal(t, entities.StatusIncomplete, record.Status)
		assert.True(t, record.Discrepancy)
		assert.Equal(t, 1, report.Stats.Incomplete)
	})

	t.Run("should continue with other repositories when one cannot be read", func(t *testing.T) {
		t.Parallel()

		// given
		history := &doubles.StubHistoryRepository{
			Histories: map[string][]*entities.Commit{
				"good": entitybuilders.LinearHistory(3, "main.go"),
			},
			OpenErrs: map[string]error{"broken": errors.New("not a git repository")},
		}
		differ := &doubles.StubDiffRepository{}
		dataset := &doubles.SpyDatasetRepository{}
		cmd := commands.NewAnalyzeCommand(history, differ.Factory(), dataset, &doubles.DummyMetricsRepository{})
		settings := newSettings(entities.Repository{Path: "broken"}, entities.Repository{Path: "good"})

		// when
		report, err := cmd.Execute(context.Background(), settings)

		// then
		require.NoError(t, err)
		assert.Len(t, dataset.Written, 2)
		failed := report.Failed()
		require.Len(t, failed, 1)
		assert.Equal(t, "broken", failed[0].Repository)
		var accessErr *entities.RepositoryAccessError
		assert.ErrorAs(t, failed[0].Err, &accessErr)
		assert.Equal(t, 2, report.Repositories[1].CommitsVisited)
	})

	t.Run("should count records per configured repository even when names collide", func(t *testing.T) {
		t.Parallel()

		// given
		history := &doubles.StubHistoryRepository{
			Histories: map[string][]*entities.Commit{
				"mirrors/a": entitybuilders.LinearHistory(3, "main.go"),
				"mirrors/b": entitybuilders.LinearHistory(2, "main.go", "util.go", "README.md"),
			},
		}
		dataset := &doubles.SpyDatasetRepository{}
		cmd := commands.NewAnalyzeCommand(history, (&doubles.StubDiffRepository{}).Factory(), dataset, &doubles.DummyMetricsRepository{})
		settings := newSettings(
			entities.Repository{Name: "project", Path: "mirrors/a"},
			entities.Repository{Name: "project", Path: "mirrors/b"},
		)

		// when
		report, err := cmd.Execute(context.Background(), settings)

		// then
		require.NoError(t, err)
		require.Len(t, report.Repositories, 2)
		assert.Equal(t, 2, report.Repositories[0].Records)
		assert.Equal(t, 3, report.Repositories[1].Records)
		assert.Len(t, dataset.Written, 5)
	})

	t.Run("should return an empty dataset for an already cancelled run", func(t *testing.T) {
		t.Parallel()

		// given
		history := &doubles.StubHistoryRepository{
			Histories: map[string][]*entities.Commit{
				"repo": entitybuilders.LinearHistory(5, "main.go"),
			},
		}
		differ := &doubles.StubDiffRepository{}
		dataset := &doubles.SpyDatasetRepository{}
		cmd := commands.NewAnalyzeCommand(history, differ.Factory(), dataset, &doubles.DummyMetricsRepository{})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		report, err := cmd.Execute(ctx, newSettings(entities.Repository{Path: "repo"}))

		// then
		require.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, report)
		assert.Empty(t, dataset.Written)
		assert.True(t, dataset.Closed)
		require.NotNil(t, dataset.Summary)
		assert.Zero(t, dataset.Summary.TotalFiles)
	})

	t.Run("should fail when the dataset cannot be created", func(t *testing.T) {
		t.Parallel()

		// given
		dataset := &doubles.SpyDatasetRepository{CreateErr: errors.New("read-only file system")}
		cmd := commands.NewAnalyzeCommand(
			&doubles.StubHistoryRepository{}, (&doubles.StubDiffRepository{}).Factory(),
			dataset, &doubles.DummyMetricsRepository{},
		)

		// when
		report, err := cmd.Execute(context.Background(), newSettings(entities.Repository{Path: "repo"}))

		// then
		require.Error(t, err)
		assert.Nil(t, report)
		assert.Contains(t, err.Error(), "failed to create dataset")
	})

	t.Run("should still summarize when a record cannot be written", func(t *testing.T) {
		t.Parallel()

		// given
		history := &doubles.StubHistoryRepository{
			Histories: map[string][]*entities.Commit{
				"repo": entitybuilders.LinearHistory(3, "main.go"),
			},
		}
		dataset := &doubles.SpyDatasetRepository{WriteErr: errors.New("disk full")}
		cmd := commands.NewAnalyzeCommand(history, (&doubles.StubDiffRepository{}).Factory(), dataset, &doubles.DummyMetricsRepository{})

		// when
		report, err := cmd.Execute(context.Background(), newSettings(entities.Repository{Path: "repo"}))

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.Equal(t, 2, report.Stats.TotalFiles)
		assert.True(t, dataset.Closed)
	})
}
