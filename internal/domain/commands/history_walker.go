package commands

import (
	"context"
	"errors"
	"io"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	"github.com/rios0rios0/diffaudit/internal/domain/repositories"
)

const progressEvery = 10

// HistoryWalker turns a repository history into diff candidates: one per
// MODIFY file of every commit that has a parent, baselined on the first parent.
type HistoryWalker struct {
	history repositories.HistoryRepository
	metrics repositories.MetricsRepository
}

// NewHistoryWalker creates a walker over the given VCS collaborator.
func NewHistoryWalker(
	history repositories.HistoryRepository,
	metrics repositories.MetricsRepository,
) *HistoryWalker {
	return &HistoryWalker{history: history, metrics: metrics}
}

// Traverse pulls commits until the history ends or limit commits with a
// parent were visited (limit <= 0 means no limit), sending candidates to out
// tagged with index, the position of repo in the configured list.
// Root commits are skipped and do not count toward the limit. It returns the
// number of visited commits; access failures are *entities.RepositoryAccessError.
func (it *HistoryWalker) Traverse(
	ctx context.Context,
	index int,
	repo entities.Repository,
	limit int,
	order entities.Order,
	out chan<- entities.Candidate,
) (int, error) {
	iter, err := it.history.Open(ctx, repo.Path, order)
	if err != nil {
		return 0, asAccessError(repo.Path, err)
	}
	defer iter.Close()

	visited := 0
	for limit <= 0 || visited < limit {
		commit, nextErr := iter.Next(ctx)
		if errors.Is(nextErr, io.EOF) {
			break
		}
		if nextErr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return visited, ctxErr
			}
			return visited, asAccessError(repo.Path, nextErr)
		}

		if commit.IsRoot() {
			logger.Debugf("[%s] Skipping root commit %s", repo.Identifier(), commit.Hash)
			continue
		}

		parent := commit.FirstParent()
		for _, file := range commit.Files {
			if file.Kind != entities.ChangeModify {
				continue
			}
			candidate := entities.Candidate{
				Repository:      repo,
				RepositoryIndex: index,
				Commit:          commit,
				ParentHash:      parent,
				File:            file,
			}
			select {
			case out <- candidate:
			case <-ctx.Done():
				return visited, ctx.Err()
			}
		}

		visited++
		it.metrics.ObserveCommit(repo.Identifier())
		if visited%progressEvery == 0 {
			logger.Infof("  [%s] Processed %d commits...", repo.Identifier(), visited)
		}
	}

	return visited, nil
}

func asAccessError(path string, err error) error {
	var accessErr *entities.RepositoryAccessError
	if errors.As(err, &accessErr) {
		return err
	}
	return entities.NewRepositoryAccessError(path, err)
}
