package repositories

import (
	"time"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
)

// MetricsRepository records run telemetry.
type MetricsRepository interface {
	ObserveCommit(repository string)
	ObserveInvocation(result entities.DiffResult)
	ObserveRecord(record entities.Record)
	ObserveRepositoryFailure(repository string)
	ObserveRun(elapsed time.Duration)
	Flush(path string) error
}
