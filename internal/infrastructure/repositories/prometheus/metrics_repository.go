package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	"github.com/rios0rios0/diffaudit/internal/domain/repositories"
)

const namespace = "diffaudit"

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// MetricsRepository keeps run telemetry in a private registry and exports
// it in the text exposition format.
type MetricsRepository struct {
	registry     *prometheus.Registry
	commits      *prometheus.CounterVec
	invocations  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	records      *prometheus.CounterVec
	repoFailures *prometheus.CounterVec
	runDuration  prometheus.Gauge
}

var _ repositories.MetricsRepository = (*MetricsRepository)(nil)

// NewMetricsRepository creates and registers every collector.
func NewMetricsRepository() *MetricsRepository {
	//nolint:exhaustruct // prometheus options are sparse by design
	m := &MetricsRepository{
		registry: prometheus.NewRegistry(),
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commits_visited_total",
			Help:      "Commits with a parent visited per repository.",
		}, []string{"repository"}),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diff_invocations_total",
			Help:      "Diff engine invocations by algorithm and outcome.",
		}, []string{"algorithm", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "diff_invocation_seconds",
			Help:      "Wall time of diff engine invocations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"algorithm"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Dataset records by category and discrepancy flag.",
		}, []string{"category", "discrepancy", "status"}),
		repoFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repository_failures_total",
			Help:      "Repositories whose traversal aborted.",
		}, []string{"repository"}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the last analysis run.",
		}),
	}

	m.registry.MustRegister(m.commits, m.invocations, m.latency, m.records, m.repoFailures, m.runDuration)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsRepository) Registry() *prometheus.Registry {
	return m.registry
}

func (m *MetricsRepository) ObserveCommit(repository string) {
	m.commits.WithLabelValues(repository).Inc()
}

func (m *MetricsRepository) ObserveInvocation(result entities.DiffResult) {
	outcome := outcomeSuccess
	if !result.OK() {
		outcome = outcomeFailure
	}
	alg := string(result.Algorithm)
	m.invocations.WithLabelValues(alg, outcome).Inc()
	m.latency.WithLabelValues(alg).Observe(result.Elapsed.Seconds())
}

func (m *MetricsRepository) ObserveRecord(record entities.Record) {
	m.records.WithLabelValues(
		string(record.Category),
		strconv.FormatBool(record.Discrepancy),
		string(record.Status),
	).Inc()
}

func (m *MetricsRepository) ObserveRepositoryFailure(repository string) {
	m.repoFailures.WithLabelValues(repository).Inc()
}

func (m *MetricsRepository) ObserveRun(elapsed time.Duration) {
	m.runDuration.Set(elapsed.Seconds())
}

// Flush writes the current state to path in the textfile collector format.
func (m *MetricsRepository) Flush(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
