package repositories

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	domainRepos "github.com/rios0rios0/diffaudit/internal/domain/repositories"
)

// DatasetRegistry dispatches dataset storage on the file extension of the
// dataset path, so the output format follows the configured file name.
type DatasetRegistry struct {
	formats  map[string]domainRepos.DatasetRepository
	fallback string
}

var _ domainRepos.DatasetRepository = (*DatasetRegistry)(nil)

// NewDatasetRegistry creates an empty registry; fallback names the format
// used for paths without a registered extension.
func NewDatasetRegistry(fallback string) *DatasetRegistry {
	return &DatasetRegistry{
		formats:  make(map[string]domainRepos.DatasetRepository),
		fallback: normalizeExt(fallback),
	}
}

// Register adds a format under a file extension (with or without the dot).
func (r *DatasetRegistry) Register(ext string, repo domainRepos.DatasetRepository) {
	r.formats[normalizeExt(ext)] = repo
}

// Get returns the format registered for the extension of path.
func (r *DatasetRegistry) Get(path string) (domainRepos.DatasetRepository, error) {
	if repo, ok := r.formats[normalizeExt(filepath.Ext(path))]; ok {
		return repo, nil
	}
	if repo, ok := r.formats[r.fallback]; ok {
		return repo, nil
	}
	return nil, fmt.Errorf("no dataset format registered for %q (supported: %s)",
		path, strings.Join(r.Names(), ", "))
}

// Names returns the registered extensions, sorted.
func (r *DatasetRegistry) Names() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *DatasetRegistry) Create(datasetPath, summaryPath string) (domainRepos.DatasetWriter, error) {
	repo, err := r.Get(datasetPath)
	if err != nil {
		return nil, err
	}
	return repo.Create(datasetPath, summaryPath)
}

func (r *DatasetRegistry) Read(datasetPath string) ([]entities.Record, error) {
	repo, err := r.Get(datasetPath)
	if err != nil {
		return nil, err
	}
	return repo.Read(datasetPath)
}

func normalizeExt(ext string) string {
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}
