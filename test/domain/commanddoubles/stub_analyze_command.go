//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/diffaudit/internal/domain/commands"
	"github.com/rios0rios0/diffaudit/internal/domain/entities"
)

// StubAnalyzeCommand is a stub implementation of commands.Analyze.
type StubAnalyzeCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Report           *commands.AnalyzeReport
	LastSettings     *entities.Settings
}

var _ commands.Analyze = (*StubAnalyzeCommand)(nil)

func (s *StubAnalyzeCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
) (*commands.AnalyzeReport, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	return s.Report, s.ExecuteErr
}
