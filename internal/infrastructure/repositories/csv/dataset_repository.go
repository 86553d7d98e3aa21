package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	"github.com/rios0rios0/diffaudit/internal/domain/repositories"
)

const (
	colRepository    = "Repository"
	colFilePath      = "File_Path"
	colFileType      = "File_Type"
	colCommit        = "Commit_SHA"
	colParent        = "Parent_SHA"
	colMessage       = "Message"
	colDiffMyers     = "Diff_Myers"
	colDiffHist      = "Diff_Hist"
	colDiscrepancy   = "Discrepancy"
	colStatus        = "Status"
	colMyersHunks    = "Myers_Hunks"
	colHistHunks     = "Hist_Hunks"
	colMyersChanged  = "Myers_Changed"
	colHistChanged   = "Hist_Changed"
	yes              = "Yes"
	no               = "No"
	summaryCategory  = "Category"
	summaryCount     = "Discrepancies"
	summaryTotal     = "Total Files"
	summaryTotalDisc = "Total Discrepancies"
	summaryIncompl   = "Incomplete"
)

// Header is the column layout of the dataset file.
func Header() []string {
	return []string{
		colRepository, colFilePath, colFileType, colCommit, colParent, colMessage,
		colDiffMyers, colDiffHist, colDiscrepancy, colStatus,
		colMyersHunks, colHistHunks, colMyersChanged, colHistChanged,
	}
}

// DatasetRepository stores records as CSV, one row per record.
type DatasetRepository struct{}

var _ repositories.DatasetRepository = (*DatasetRepository)(nil)

// NewDatasetRepository creates a CSV dataset repository.
func NewDatasetRepository() *DatasetRepository {
	return &DatasetRepository{}
}

// Create truncates datasetPath, writes the header and returns a streaming writer.
func (r *DatasetRepository) Create(datasetPath, summaryPath string) (repositories.DatasetWriter, error) {
	file, err := os.Create(datasetPath)
	if err != nil {
		return nil, fmt.Errorf("create %q: %w", datasetPath, err)
	}

	writer := stdcsv.NewWriter(file)
	if err = writer.Write(Header()); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	writer.Flush()

	return &datasetWriter{file: file, writer: writer, summaryPath: summaryPath}, nil
}

// Read loads a dataset back. Only File_Type and Discrepancy are required,
// so datasets written by earlier tooling can still be summarized.
func (r *DatasetRepository) Read(datasetPath string) ([]entities.Record, error) {
	file, err := os.Open(datasetPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadRecords(file)
}

// ReadRecords parses dataset rows from reader.
func ReadRecords(reader io.Reader) ([]entities.Record, error) {
	csvReader := stdcsv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("dataset is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colFileType, colDiscrepancy} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("dataset is missing column %q", required)
		}
	}

	var records []entities.Record
	for line := 2; ; line++ {
		row, readErr := csvReader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("line %d: %w", line, readErr)
		}
		records = append(records, parseRow(index, row))
	}
	return records, nil
}

func parseRow(index map[string]int, row []string) entities.Record {
	get := func(name string) string {
		if i, ok := index[name]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	status := entities.Status(get(colStatus))
	if status == "" {
		status = entities.StatusComplete
	}

	return entities.Record{
		Repository:       get(colRepository),
		FilePath:         get(colFilePath),
		Category:         entities.Category(get(colFileType)),
		CommitHash:       get(colCommit),
		ParentHash:       get(colParent),
		Title:            get(colMessage),
		MyersSnippet:     get(colDiffMyers),
		HistogramSnippet: get(colDiffHist),
		Discrepancy:      strings.EqualFold(get(colDiscrepancy), yes),
		Status:           status,
	}
}

type datasetWriter struct {
	file        *os.File
	writer      *stdcsv.Writer
	summaryPath string
}

func (w *datasetWriter) Write(record entities.Record) error {
	discrepancy := no
	if record.Discrepancy {
		discrepancy = yes
	}

	if err := w.writer.Write([]string{
		record.Repository,
		record.FilePath,
		string(record.Category),
		record.CommitHash,
		record.ParentHash,
		record.Title,
		record.MyersSnippet,
		record.HistogramSnippet,
		discrepancy,
		string(record.Status),
		strconv.Itoa(record.MyersStats.Hunks),
		strconv.Itoa(record.HistogramStats.Hunks),
		strconv.Itoa(record.MyersStats.Changed()),
		strconv.Itoa(record.HistogramStats.Changed()),
	}); err != nil {
		return err
	}
	w.writer.Flush()
	return w.writer.Error()
}

func (w *datasetWriter) WriteSummary(stats entities.Stats) error {
	if w.summaryPath == "" {
		return nil
	}

	file, err := os.Create(w.summaryPath)
	if err != nil {
		return fmt.Errorf("create %q: %w", w.summaryPath, err)
	}
	defer file.Close()

	writer := stdcsv.NewWriter(file)
	rows := [][]string{{summaryCategory, summaryCount}}
	for _, bucket := range stats.Categories {
		rows = append(rows, []string{string(bucket.Category), strconv.Itoa(bucket.Discrepancies)})
	}
	rows = append(rows,
		[]string{summaryTotal, strconv.Itoa(stats.TotalFiles)},
		[]string{summaryTotalDisc, strconv.Itoa(stats.TotalDiscrepancies)},
		[]string{summaryIncompl, strconv.Itoa(stats.Incomplete)},
	)
	if err = writer.WriteAll(rows); err != nil {
		return err
	}
	return file.Close()
}

func (w *datasetWriter) Close() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}
