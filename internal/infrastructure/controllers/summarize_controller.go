package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/diffaudit/internal/domain/commands"
	"github.com/rios0rios0/diffaudit/internal/domain/entities"
)

// SummarizeController handles the "summarize" subcommand.
type SummarizeController struct {
	command commands.Summarize
}

// NewSummarizeController creates a new SummarizeController.
func NewSummarizeController(command commands.Summarize) *SummarizeController {
	return &SummarizeController{command: command}
}

// GetBind returns the Cobra command metadata for the summarize controller.
func (it *SummarizeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "summarize [dataset]",
		Short: "Print discrepancy counts of an existing dataset",
		Long: `Read a dataset produced by "analyze" and print the number of
discrepancies per file category together with the totals.`,
	}
}

// AddFlags has nothing to add; the dataset path is positional.
func (it *SummarizeController) AddFlags(_ *cobra.Command) {}

// Execute summarizes the dataset given as argument, or the default dataset.
func (it *SummarizeController) Execute(cmd *cobra.Command, args []string) {
	datasetPath := entities.DefaultDatasetPath
	if len(args) > 0 {
		datasetPath = args[0]
	}

	stats, err := it.command.Execute(context.Background(), datasetPath)
	if err != nil {
		logger.Errorf("Summarize failed: %v", err)
		return
	}

	RenderStats(cmd.OutOrStdout(), stats)
}
