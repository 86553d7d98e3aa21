package repositories

import "github.com/rios0rios0/diffaudit/internal/domain/entities"

// DatasetWriter streams records and the final summary to persistent storage.
type DatasetWriter interface {
	Write(record entities.Record) error
	WriteSummary(stats entities.Stats) error
	Close() error
}

// DatasetRepository opens writers and reads existing datasets back.
type DatasetRepository interface {
	Create(datasetPath, summaryPath string) (DatasetWriter, error)
	Read(datasetPath string) ([]entities.Record, error)
}
