//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"sync"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	"github.com/rios0rios0/diffaudit/internal/domain/repositories"
)

// SpyDatasetRepository keeps everything written to it in memory.
type SpyDatasetRepository struct {
	// --- Create ---
	CreateErr error
	// --- Write ---
	WriteErr error
	// --- Read ---
	ReadRecords []entities.Record
	ReadErr     error

	mu sync.Mutex
	// spy: paths received
	DatasetPath string
	SummaryPath string
	ReadPaths   []string
	// spy: data written
	Written []entities.Record
	Summary *entities.Stats
	Closed  bool
}

var _ repositories.DatasetRepository = (*SpyDatasetRepository)(nil)

func (s *SpyDatasetRepository) Create(datasetPath, summaryPath string) (repositories.DatasetWriter, error) {
	s.DatasetPath = datasetPath
	s.SummaryPath = summaryPath
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	return s, nil
}

func (s *SpyDatasetRepository) Read(datasetPath string) ([]entities.Record, error) {
	s.ReadPaths = append(s.ReadPaths, datasetPath)
	return s.ReadRecords, s.ReadErr
}

func (s *SpyDatasetRepository) Write(record entities.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.Written = append(s.Written, record)
	return nil
}

func (s *SpyDatasetRepository) WriteSummary(stats entities.Stats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Summary = &stats
	return nil
}

func (s *SpyDatasetRepository) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return nil
}
