package repositories

import (
	"context"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
)

// CommitIterator yields commits one at a time. Next returns io.EOF when
// the history is exhausted.
type CommitIterator interface {
	Next(ctx context.Context) (*entities.Commit, error)
	Close()
}

// HistoryRepository is the read-only VCS collaborator.
type HistoryRepository interface {
	// Open prepares a commit iterator for the repository at path. It fails
	// with *entities.RepositoryAccessError when the repository cannot be read.
	Open(ctx context.Context, path string, order entities.Order) (CommitIterator, error)
}
