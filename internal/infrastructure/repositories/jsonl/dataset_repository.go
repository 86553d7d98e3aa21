package jsonl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	"github.com/rios0rios0/diffaudit/internal/domain/repositories"
)

// row is the on-disk shape of one record.
type row struct {
	Repository    string `json:"repository"`
	FilePath      string `json:"file_path"`
	Category      string `json:"file_type"`
	CommitHash    string `json:"commit_sha"`
	ParentHash    string `json:"parent_sha"`
	Title         string `json:"message"`
	DiffMyers     string `json:"diff_myers"`
	DiffHistogram string `json:"diff_hist"`
	Discrepancy   bool   `json:"discrepancy"`
	Status        string `json:"status"`
	MyersHunks    int    `json:"myers_hunks"`
	HistHunks     int    `json:"hist_hunks"`
	MyersAdded    int    `json:"myers_added"`
	MyersDeleted  int    `json:"myers_deleted"`
	HistAdded     int    `json:"hist_added"`
	HistDeleted   int    `json:"hist_deleted"`
}

type summary struct {
	Categories         map[string]int `json:"categories"`
	TotalFiles         int            `json:"total_files"`
	TotalDiscrepancies int            `json:"total_discrepancies"`
	Other              int            `json:"other"`
	Incomplete         int            `json:"incomplete"`
}

// DatasetRepository stores records as JSON Lines, one object per record.
type DatasetRepository struct{}

var _ repositories.DatasetRepository = (*DatasetRepository)(nil)

// NewDatasetRepository creates a JSON Lines dataset repository.
func NewDatasetRepository() *DatasetRepository {
	return &DatasetRepository{}
}

func (r *DatasetRepository) Create(datasetPath, summaryPath string) (repositories.DatasetWriter, error) {
	file, err := os.Create(datasetPath)
	if err != nil {
		return nil, fmt.Errorf("create %q: %w", datasetPath, err)
	}
	buffered := bufio.NewWriter(file)
	return &datasetWriter{
		file:        file,
		buffered:    buffered,
		encoder:     json.NewEncoder(buffered),
		summaryPath: summaryPath,
	}, nil
}

func (r *DatasetRepository) Read(datasetPath string) ([]entities.Record, error) {
	file, err := os.Open(datasetPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []entities.Record
	decoder := json.NewDecoder(file)
	for {
		var item row
		if decodeErr := decoder.Decode(&item); errors.Is(decodeErr, io.EOF) {
			break
		} else if decodeErr != nil {
			return nil, fmt.Errorf("record %d: %w", len(records)+1, decodeErr)
		}
		records = append(records, fromRow(item))
	}
	return records, nil
}

func toRow(record entities.Record) row {
	return row{
		Repository:    record.Repository,
		FilePath:      record.FilePath,
		Category:      string(record.Category),
		CommitHash:    record.CommitHash,
		ParentHash:    record.ParentHash,
		Title:         record.Title,
		DiffMyers:     record.MyersSnippet,
		DiffHistogram: record.HistogramSnippet,
		Discrepancy:   record.Discrepancy,
		Status:        string(record.Status),
		MyersHunks:    record.MyersStats.Hunks,
		HistHunks:     record.HistogramStats.Hunks,
		MyersAdded:    record.MyersStats.Added,
		MyersDeleted:  record.MyersStats.Deleted,
		HistAdded:     record.HistogramStats.Added,
		HistDeleted:   record.HistogramStats.Deleted,
	}
}

func fromRow(item row) entities.Record {
	status := entities.Status(item.Status)
	if status == "" {
		status = entities.StatusComplete
	}
	return entities.Record{
		Repository:       item.Repository,
		FilePath:         item.FilePath,
		Category:         entities.Category(item.Category),
		CommitHash:       item.CommitHash,
		ParentHash:       item.ParentHash,
		Title:            item.Title,
		MyersSnippet:     item.DiffMyers,
		HistogramSnippet: item.DiffHistogram,
		Discrepancy:      item.Discrepancy,
		Status:           status,
		MyersStats: entities.DiffStats{
			Hunks: item.MyersHunks, Added: item.MyersAdded, Deleted: item.MyersDeleted,
		},
		HistogramStats: entities.DiffStats{
			Hunks: item.HistHunks, Added: item.HistAdded, Deleted: item.HistDeleted,
		},
	}
}

type datasetWriter struct {
	file        *os.File
	buffered    *bufio.Writer
	encoder     *json.Encoder
	summaryPath string
}

func (w *datasetWriter) Write(record entities.Record) error {
	if err := w.encoder.Encode(toRow(record)); err != nil {
		return err
	}
	return w.buffered.Flush()
}

func (w *datasetWriter) WriteSummary(stats entities.Stats) error {
	if w.summaryPath == "" {
		return nil
	}

	out := summary{
		Categories:         make(map[string]int, len(stats.Categories)),
		TotalFiles:         stats.TotalFiles,
		TotalDiscrepancies: stats.TotalDiscrepancies,
		Other:              stats.Other,
		Incomplete:         stats.Incomplete,
	}
	for _, bucket := range stats.Categories {
		out.Categories[string(bucket.Category)] = bucket.Discrepancies
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(w.summaryPath, append(data, '\n'), 0o644) //nolint:gosec,mnd // report artifact
}

func (w *datasetWriter) Close() error {
	if err := w.buffered.Flush(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}
