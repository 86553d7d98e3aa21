package commands

import (
	"context"
	"fmt"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	"github.com/rios0rios0/diffaudit/internal/domain/repositories"
)

// Summarize is the interface for the summarize command.
type Summarize interface {
	Execute(ctx context.Context, datasetPath string) (entities.Stats, error)
}

// SummarizeCommand recomputes the summary of an existing dataset.
type SummarizeCommand struct {
	dataset repositories.DatasetRepository
}

// NewSummarizeCommand creates a new SummarizeCommand.
func NewSummarizeCommand(dataset repositories.DatasetRepository) *SummarizeCommand {
	return &SummarizeCommand{dataset: dataset}
}

// Execute reads the dataset at datasetPath and summarizes it.
func (it *SummarizeCommand) Execute(ctx context.Context, datasetPath string) (entities.Stats, error) {
	if err := ctx.Err(); err != nil {
		return entities.Stats{}, err
	}

	records, err := it.dataset.Read(datasetPath)
	if err != nil {
		return entities.Stats{}, fmt.Errorf("failed to read dataset %q: %w", datasetPath, err)
	}
	return entities.Summarize(records), nil
}
