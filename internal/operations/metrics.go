package operations

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"feedcli/pkg/contracts/domain"
)

const metricsNamespace = "feedcli"

// Metrics counts run and per-file results. A CLI process gathers them once at
// exit and writes them as a node-exporter textfile.
type Metrics struct {
	registry    *prometheus.Registry
	files       *prometheus.CounterVec
	runs        *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
}

// NewMetrics registers the run metrics on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "files_total",
			Help:      "Input units processed, by operation and outcome status.",
		}, []string{"operation", "status"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_total",
			Help:      "Runs finished, by operation and result.",
		}, []string{"operation", "result"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of completed and cancelled runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"operation"}),
	}
	m.registry.MustRegister(m.files, m.runs, m.runDuration)
	return m
}

// ObserveOutcome counts one processed unit
func (m *Metrics) ObserveOutcome(op domain.OperationType, o domain.Outcome) {
	if m == nil {
		return
	}
	m.files.WithLabelValues(string(op), string(o.Status)).Inc()
}

// ObserveRun records a finished run
func (m *Metrics) ObserveRun(op domain.OperationType, report *domain.Report) {
	if m == nil || report == nil {
		return
	}
	result := "completed"
	if report.Cancelled {
		result = "cancelled"
	}
	m.runs.WithLabelValues(string(op), result).Inc()
	m.runDuration.WithLabelValues(string(op)).Observe(report.Elapsed.Seconds())
}

// ObserveRejected records a run refused before processing started
func (m *Metrics) ObserveRejected(op domain.OperationType) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(string(op), "rejected").Inc()
}

// WriteTextfile writes the gathered metrics to path in the text exposition format
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
