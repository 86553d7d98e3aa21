package repositories

import (
	"context"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
)

// DiffRequest identifies one file change to diff between two revisions.
type DiffRequest struct {
	RepositoryPath string
	From           string
	To             string
	Path           string
}

// DiffRepository invokes the external differencing engine. Failures are
// reported inside the returned result, never as an error.
type DiffRepository interface {
	Diff(ctx context.Context, algorithm entities.Algorithm, req DiffRequest) entities.DiffResult
}

// DiffRepositoryFactory builds a DiffRepository for a configured engine binary.
type DiffRepositoryFactory func(binary string) DiffRepository
