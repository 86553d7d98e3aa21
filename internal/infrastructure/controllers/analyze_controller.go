package controllers

import (
	"context"
	"errors"
	"os"
	"os/signal"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/diffaudit/internal/domain/commands"
	"github.com/rios0rios0/diffaudit/internal/domain/entities"
)

// AnalyzeController handles the "analyze" subcommand.
type AnalyzeController struct {
	command commands.Analyze
}

// NewAnalyzeController creates a new AnalyzeController.
func NewAnalyzeController(command commands.Analyze) *AnalyzeController {
	return &AnalyzeController{command: command}
}

// GetBind returns the Cobra command metadata for the analyze controller.
func (it *AnalyzeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "analyze [repository...]",
		Short: "Compare Myers and Histogram diffs across repository history",
		Long: `Walk the history of each repository, diff every modified file of every
commit against its first parent with both the Myers and the Histogram
algorithm, and record where the two disagree once whitespace and blank
lines are ignored.

Repositories come from the config file, or from the positional arguments
which replace the configured list.`,
	}
}

// AddFlags adds the analyze-specific flags to the given Cobra command.
func (it *AnalyzeController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("limit", "n", entities.DefaultCommitLimit,
		"Commits (with a parent) to visit per repository, 0 for all")
	cmd.Flags().Duration("timeout", entities.DefaultDiffTimeout, "Timeout of each diff invocation")
	cmd.Flags().IntP("workers", "w", 0, "Concurrent diff workers (default: number of CPUs)")
	cmd.Flags().String("order", string(entities.OrderOldestFirst),
		"History order: oldest-first or native (newest first)")
	cmd.Flags().StringP("output", "o", entities.DefaultDatasetPath, "Dataset file (.csv or .jsonl)")
	cmd.Flags().String("summary", entities.DefaultSummaryPath, "Summary file")
	cmd.Flags().String("metrics", "", "Write Prometheus metrics to this textfile")
	cmd.Flags().String("git", entities.DefaultGitBinary, "Git binary used for diffing")
}

// Execute runs the analysis.
func (it *AnalyzeController) Execute(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	settings, err := LoadSettings(cmd, args)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	logger.Infof(
		"Starting analysis of %d repositories (limit %d commits, %d workers, timeout %s)",
		len(settings.Repositories), settings.CommitLimit, settings.Workers, settings.DiffTimeout,
	)

	report, runErr := it.command.Execute(ctx, settings)
	if report != nil {
		RenderStats(cmd.OutOrStdout(), report.Stats)
		for _, failed := range report.Failed() {
			if !errors.Is(failed.Err, context.Canceled) {
				logger.Warnf("Repository %s was not fully analyzed: %v", failed.Repository, failed.Err)
			}
		}
		logger.Infof("Results saved to %s", settings.Output.Dataset)
	}
	if runErr != nil {
		logger.Errorf("Analysis finished with errors: %v", runErr)
	}
}

// LoadSettings builds the run settings from the config file (explicit,
// discovered, or none) and applies positional repositories and flag overrides.
func LoadSettings(cmd *cobra.Command, args []string) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var settings *entities.Settings
	if configPath == "" {
		found, findErr := entities.FindConfigFile()
		switch {
		case findErr == nil:
			configPath = found
		case errors.Is(findErr, entities.ErrConfigNotFound) && len(args) > 0:
			settings = entities.DefaultSettings()
		default:
			return nil, findErr
		}
	}

	if settings == nil {
		logger.Infof("Using config file: %s", configPath)
		loaded, loadErr := entities.ReadSettings(configPath)
		if loadErr != nil {
			return nil, loadErr
		}
		settings = loaded
	}

	if len(args) > 0 {
		settings.Repositories = repositoriesFromArgs(args)
	}
	applyFlagOverrides(cmd, settings)

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func repositoriesFromArgs(args []string) []entities.Repository {
	repos := make([]entities.Repository, 0, len(args))
	for _, arg := range args {
		repos = append(repos, entities.Repository{Path: arg})
	}
	return repos
}

func applyFlagOverrides(cmd *cobra.Command, settings *entities.Settings) {
	flags := cmd.Flags()
	if flags.Changed("limit") {
		settings.CommitLimit, _ = flags.GetInt("limit")
	}
	if flags.Changed("timeout") {
		settings.DiffTimeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("workers") {
		if workers, _ := flags.GetInt("workers"); workers > 0 {
			settings.Workers = workers
		}
	}
	if flags.Changed("order") {
		order, _ := flags.GetString("order")
		settings.Order = entities.Order(order)
	}
	if flags.Changed("output") {
		settings.Output.Dataset, _ = flags.GetString("output")
	}
	if flags.Changed("summary") {
		settings.Output.Summary, _ = flags.GetString("summary")
	}
	if flags.Changed("metrics") {
		settings.Output.Metrics, _ = flags.GetString("metrics")
	}
	if flags.Changed("git") {
		settings.GitBinary, _ = flags.GetString("git")
	}
}
