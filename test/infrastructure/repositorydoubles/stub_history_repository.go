//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"io"
	"sync"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	"github.com/rios0rios0/diffaudit/internal/domain/repositories"
)

// StubHistoryRepository serves canned histories keyed by repository path.
type StubHistoryRepository struct {
	// --- Open ---
	Histories map[string][]*entities.Commit
	OpenErrs  map[string]error

	// --- Next ---
	// NextErrs fails the pull at the given index for a path.
	NextErrs map[string]NextErr

	mu sync.Mutex
	// spy: paths opened and orders requested
	OpenedPaths []string
	Orders      []entities.Order
	// spy: commits pulled per path
	Pulled map[string]int
	// spy: iterators closed
	Closed int
}

// NextErr makes Next fail once At commits were pulled.
type NextErr struct {
	At  int
	Err error
}

var _ repositories.HistoryRepository = (*StubHistoryRepository)(nil)

func (s *StubHistoryRepository) Open(
	_ context.Context,
	path string,
	order entities.Order,
) (repositories.CommitIterator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.OpenedPaths = append(s.OpenedPaths, path)
	s.Orders = append(s.Orders, order)
	if err, ok := s.OpenErrs[path]; ok {
		return nil, err
	}
	return &stubIterator{owner: s, path: path, commits: s.Histories[path]}, nil
}

// PulledFrom returns how many commits were pulled from path.
func (s *StubHistoryRepository) PulledFrom(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Pulled[path]
}

type stubIterator struct {
	owner   *StubHistoryRepository
	path    string
	commits []*entities.Commit
	pos     int
}

func (it *stubIterator) Next(ctx context.Context) (*entities.Commit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	it.owner.mu.Lock()
	defer it.owner.mu.Unlock()

	if failure, ok := it.owner.NextErrs[it.path]; ok && it.pos == failure.At {
		return nil, failure.Err
	}
	if it.pos >= len(it.commits) {
		return nil, io.EOF
	}

	commit := it.commits[it.pos]
	it.pos++
	if it.owner.Pulled == nil {
		it.owner.Pulled = make(map[string]int)
	}
	it.owner.Pulled[it.path]++
	return commit, nil
}

func (it *stubIterator) Close() {
	it.owner.mu.Lock()
	it.owner.Closed++
	it.owner.mu.Unlock()
}
