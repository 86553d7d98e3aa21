package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	"github.com/rios0rios0/diffaudit/internal/domain/repositories"
)

// Analyze is the interface for the analyze command.
type Analyze interface {
	Execute(ctx context.Context, settings *entities.Settings) (*AnalyzeReport, error)
}

// RepositoryReport is the outcome of one repository traversal.
type RepositoryReport struct {
	Repository     string
	CommitsVisited int
	Records        int
	Err            error
}

// AnalyzeReport summarizes a completed run.
type AnalyzeReport struct {
	Repositories []RepositoryReport
	Stats        entities.Stats
	Elapsed      time.Duration
}

// Failed returns the repositories whose traversal aborted.
func (r *AnalyzeReport) Failed() []RepositoryReport {
	var failed []RepositoryReport
	for _, repo := range r.Repositories {
		if repo.Err != nil {
			failed = append(failed, repo)
		}
	}
	return failed
}

// AnalyzeCommand runs the discrepancy pipeline: walk every repository,
// diff each MODIFY file with Myers and Histogram on a bounded worker pool,
// and stream the resulting records through a single writer.
type AnalyzeCommand struct {
	walker    *HistoryWalker
	newDiffer repositories.DiffRepositoryFactory
	dataset   repositories.DatasetRepository
	metrics   repositories.MetricsRepository
}

// NewAnalyzeCommand creates a new AnalyzeCommand.
func NewAnalyzeCommand(
	history repositories.HistoryRepository,
	newDiffer repositories.DiffRepositoryFactory,
	dataset repositories.DatasetRepository,
	metrics repositories.MetricsRepository,
) *AnalyzeCommand {
	return &AnalyzeCommand{
		walker:    NewHistoryWalker(history, metrics),
		newDiffer: newDiffer,
		dataset:   dataset,
		metrics:   metrics,
	}
}

// Execute runs the pipeline over every configured repository. A repository
// that cannot be read is reported and skipped. Records produced before a
// cancellation are kept and summarized.
func (it *AnalyzeCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
) (*AnalyzeReport, error) {
	start := time.Now()

	writer, err := it.dataset.Create(settings.Output.Dataset, settings.Output.Summary)
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset: %w", err)
	}

	differ := it.newDiffer(settings.GitBinary)
	queueSize := settings.Workers * 2 //nolint:mnd // two candidates in flight per worker
	candidates := make(chan entities.Candidate, queueSize)
	records := make(chan processed, queueSize)

	report := &AnalyzeReport{
		Repositories: make([]RepositoryReport, len(settings.Repositories)),
	}

	var producers errgroup.Group
	for i, repo := range settings.Repositories {
		producers.Go(func() error {
			logger.Infof("Scanning %s...", repo.Identifier())
			visited, walkErr := it.walker.Traverse(ctx, i, repo, settings.CommitLimit, settings.Order, candidates)
			report.Repositories[i] = RepositoryReport{
				Repository:     repo.Identifier(),
				CommitsVisited: visited,
				Err:            walkErr,
			}
			if walkErr != nil && !errors.Is(walkErr, context.Canceled) {
				logger.Errorf("Failed to traverse %s: %v", repo.Identifier(), walkErr)
				it.metrics.ObserveRepositoryFailure(repo.Identifier())
			}
			return nil
		})
	}
	go func() {
		_ = producers.Wait()
		close(candidates)
	}()

	var workers errgroup.Group
	for range settings.Workers {
		workers.Go(func() error {
			for candidate := range candidates {
				if record, ok := it.process(ctx, differ, settings, candidate); ok {
					records <- processed{repository: candidate.RepositoryIndex, record: record}
				}
			}
			return nil
		})
	}
	go func() {
		_ = workers.Wait()
		close(records)
	}()

	results := entities.NewResultSet()
	perRepository := make([]int, len(settings.Repositories))
	var writeErr error
	for item := range records {
		record := item.record
		results.Append(record)
		perRepository[item.repository]++
		it.metrics.ObserveRecord(record)
		if writeErr != nil {
			continue
		}
		if err := writer.Write(record); err != nil {
			writeErr = fmt.Errorf("failed to write record: %w", err)
			logger.Errorf("%v", writeErr)
		}
	}

	for i, count := range perRepository {
		report.Repositories[i].Records = count
	}

	report.Stats = entities.Summarize(results.Records())
	report.Elapsed = time.Since(start)
	it.metrics.ObserveRun(report.Elapsed)

	errs := []error{writeErr}
	if err := writer.WriteSummary(report.Stats); err != nil {
		errs = append(errs, fmt.Errorf("failed to write summary: %w", err))
	}
	if err := writer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close dataset: %w", err))
	}
	if path := settings.Output.Metrics; path != "" {
		if err := it.metrics.Flush(path); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	errs = append(errs, ctx.Err())

	logger.Infof(
		"Analysis complete. Found %s file modifications (%s discrepancies) in %s",
		humanize.Comma(int64(report.Stats.TotalFiles)),
		humanize.Comma(int64(report.Stats.TotalDiscrepancies)),
		report.Elapsed.Round(time.Millisecond),
	)

	return report, errors.Join(errs...)
}

// processed is a record tagged with the index of its repository.
type processed struct {
	repository int
	record     entities.Record
}

// process diffs one candidate with both algorithms. The record is only
// formed once both invocations returned and the run was not cancelled.
func (it *AnalyzeCommand) process(
	ctx context.Context,
	differ repositories.DiffRepository,
	settings *entities.Settings,
	candidate entities.Candidate,
) (entities.Record, bool) {
	if ctx.Err() != nil {
		return entities.Record{}, false
	}

	req := repositories.DiffRequest{
		RepositoryPath: candidate.Repository.Path,
		From:           candidate.ParentHash,
		To:             candidate.Commit.Hash,
		Path:           candidate.File.Path(),
	}

	var myers, histogram entities.DiffResult
	var pair errgroup.Group
	pair.Go(func() error {
		myers = it.invoke(ctx, differ, settings.DiffTimeout, entities.AlgorithmMyers, req)
		return nil
	})
	pair.Go(func() error {
		histogram = it.invoke(ctx, differ, settings.DiffTimeout, entities.AlgorithmHistogram, req)
		return nil
	})
	_ = pair.Wait()

	if ctx.Err() != nil {
		return entities.Record{}, false
	}
	return entities.NewRecord(candidate, myers, histogram, settings.SnippetLength), true
}

func (it *AnalyzeCommand) invoke(
	ctx context.Context,
	differ repositories.DiffRepository,
	timeout time.Duration,
	algorithm entities.Algorithm,
	req repositories.DiffRequest,
) entities.DiffResult {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result := differ.Diff(callCtx, algorithm, req)
	it.metrics.ObserveInvocation(result)
	if !result.OK() {
		logger.Warnf(
			"%s diff failed for %s (%s..%s): %s",
			algorithm, req.Path, shortHash(req.From), shortHash(req.To), result.Failure,
		)
	}
	return result
}

func shortHash(hash string) string {
	const shortLen = 7
	if len(hash) > shortLen {
		return hash[:shortLen]
	}
	return hash
}
