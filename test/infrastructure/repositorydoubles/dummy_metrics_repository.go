//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	"github.com/rios0rios0/diffaudit/internal/domain/repositories"
)

// DummyMetricsRepository is a no-op implementation of repositories.MetricsRepository.
type DummyMetricsRepository struct{}

var _ repositories.MetricsRepository = (*DummyMetricsRepository)(nil)

func (d *DummyMetricsRepository) ObserveCommit(_ string) {}

func (d *DummyMetricsRepository) ObserveInvocation(_ entities.DiffResult) {}

func (d *DummyMetricsRepository) ObserveRecord(_ entities.Record) {}

func (d *DummyMetricsRepository) ObserveRepositoryFailure(_ string) {}

func (d *DummyMetricsRepository) ObserveRun(_ time.Duration) {}

func (d *DummyMetricsRepository) Flush(_ string) error { return nil }
