//go:build unit

package jsonl_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	"github.com/rios0rios0/diffaudit/internal/infrastructure/repositories/jsonl"
	"github.com/rios0rios0/diffaudit/test/domain/entitybuilders"
)

func TestDatasetRepository(t *testing.T) {
	t.Parallel()

	t.Run("should write one JSON object per line and read them back", func(t *testing.T) {
		t.Parallel()

		// given
		datasetPath := filepath.Join(t.TempDir(), "records.jsonl")
		repository := jsonl.NewDatasetRepository()
		builder := entitybuilders.NewRecordBuilder()
		first := builder.WithFilePath("tests/test_core.py").WithDiscrepancy(true).BuildRecord()
		first.HistogramStats = entities.DiffStats{Hunks: 2, Added: 3, Deleted: 1}
		second := builder.WithFilePath("LICENSE").WithStatus(entities.StatusIncomplete).BuildRecord()

		// when
		writer, err := repository.Create(datasetPath, "")
		require.NoError(t, err)
		require.NoError(t, writer.Write(first))
		require.NoError(t, writer.Write(second))
		require.NoError(t, writer.Close())
		records, err := repository.Read(datasetPath)

		// then
		require.NoError(t, err)
		data, readErr := os.ReadFile(datasetPath)
		require.NoError(t, readErr)
		assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 2)
		assert.Equal(t, []entities.Record{first, second}, records)
	})

	t.Run("should write the summary as a JSON document", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		summaryPath := filepath.Join(dir, "stats.json")
		repository := jsonl.NewDatasetRepository()
		stats := entities.NewStats()
		stats.Add(entities.CategoryLicense, true, entities.StatusComplete)
		stats.Add(entities.CategoryOther, true, entities.StatusComplete)

		// when
		writer, err := repository.Create(filepath.Join(dir, "records.jsonl"), summaryPath)
		require.NoError(t, err)
		require.NoError(t, writer.WriteSummary(stats))
		require.NoError(t, writer.Close())

		// then
		data, err := os.ReadFile(summaryPath)
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.InDelta(t, 2, decoded["total_files"], 0)
		assert.InDelta(t, 2, decoded["total_discrepancies"], 0)
		assert.InDelta(t, 1, decoded["other"], 0)
		categories, ok := decoded["categories"].(map[string]any)
		require.True(t, ok)
		assert.Len(t, categories, 4)
		assert.InDelta(t, 1, categories["LICENSE"], 0)
	})

	t.Run("should report the position of a malformed record", func(t *testing.T) {
		t.Parallel()

		// given
		datasetPath := filepath.Join(t.TempDir(), "records.jsonl")
		require.NoError(t, os.WriteFile(datasetPath, []byte("{\"file_type\":\"README\"}\n{oops\n"), 0o600))
		repository := jsonl.NewDatasetRepository()

		// when
		_, err := repository.Read(datasetPath)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "record 2")
	})
}
