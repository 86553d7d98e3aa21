//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	"github.com/rios0rios0/diffaudit/internal/domain/repositories"
)

// StubDiffRepository returns canned diff texts per algorithm.
type StubDiffRepository struct {
	// --- Diff ---
	Texts    map[entities.Algorithm]string
	Failures map[entities.Algorithm]string
	// ByPath overrides Texts for a specific file path.
	ByPath map[string]map[entities.Algorithm]string
	// WaitForDeadline makes the given algorithm block until ctx is done.
	WaitForDeadline map[entities.Algorithm]bool

	mu sync.Mutex
	// spy: every invocation received
	Calls []DiffCall
}

// DiffCall records a single invocation of Diff.
type DiffCall struct {
	Algorithm entities.Algorithm
	Request   repositories.DiffRequest
	Deadline  bool
}

var _ repositories.DiffRepository = (*StubDiffRepository)(nil)

// Factory returns a DiffRepositoryFactory that always yields this stub.
func (s *StubDiffRepository) Factory() repositories.DiffRepositoryFactory {
	return func(_ string) repositories.DiffRepository { return s }
}

func (s *StubDiffRepository) Diff(
	ctx context.Context,
	algorithm entities.Algorithm,
	req repositories.DiffRequest,
) entities.DiffResult {
	_, hasDeadline := ctx.Deadline()

	s.mu.Lock()
	s.Calls = append(s.Calls, DiffCall{Algorithm: algorithm, Request: req, Deadline: hasDeadline})
	wait := s.WaitForDeadline[algorithm]
	s.mu.Unlock()

	if wait {
		<-ctx.Done()
		return entities.Failed(algorithm, "timed out")
	}
	if reason, ok := s.Failures[algorithm]; ok {
		return entities.Failed(algorithm, reason)
	}
	if texts, ok := s.ByPath[req.Path]; ok {
		return entities.Succeeded(algorithm, texts[algorithm])
	}
	return entities.Succeeded(algorithm, s.Texts[algorithm])
}

// CallsFor returns the invocations made with the given algorithm.
func (s *StubDiffRepository) CallsFor(algorithm entities.Algorithm) []DiffCall {
	s.mu.Lock()
	defer s.mu.Unlock()

	var calls []DiffCall
	for _, call := range s.Calls {
		if call.Algorithm == algorithm {
			calls = append(calls, call)
		}
	}
	return calls
}
