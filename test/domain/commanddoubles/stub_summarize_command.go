//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/diffaudit/internal/domain/commands"
	"github.com/rios0rios0/diffaudit/internal/domain/entities"
)

// StubSummarizeCommand is a stub implementation of commands.Summarize.
type StubSummarizeCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Stats            entities.Stats
	LastDatasetPath  string
}

var _ commands.Summarize = (*StubSummarizeCommand)(nil)

func (s *StubSummarizeCommand) Execute(_ context.Context, datasetPath string) (entities.Stats, error) {
	s.ExecuteCallCount++
	s.LastDatasetPath = datasetPath
	return s.Stats, s.ExecuteErr
}
