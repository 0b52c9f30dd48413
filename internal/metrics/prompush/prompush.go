// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// Batch tools exit when the run ends, so a scrape endpoint would vanish
// before Prometheus could read it; pushing the collected registry to a
// Pushgateway on shutdown fits the lifecycle. The package adapts the
// generic metrics.Backend interface by:
//
//   - Using client_golang CounterVec and SummaryVec collectors.
//   - Mapping the common labels (job, step, status, kind) onto
//     Prometheus labels, with job as the Pushgateway grouping key.
//
// All Prometheus-specific dependencies stay here so the rest of the
// project can swap to alternative backends (e.g. Datadog) without
// changes to the tools.
package prompush

import (
	"fmt"

	"dataprep/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" group
	reg        *prometheus.Registry

	stepCounter  *prometheus.CounterVec // "dataprep_step_total"
	stepDuration *prometheus.SummaryVec // "dataprep_step_duration_seconds"

	rowCounter  *prometheus.CounterVec // "dataprep_rows_total"
	nullCounter prometheus.Counter     // "dataprep_cells_null_total"
}

// NewBackend constructs a Prometheus Pushgateway backend.
// jobName: the Pushgateway "job" name (the tool name).
// gatewayURL: base URL of the Pushgateway server.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "dataprep"
	}

	reg := prometheus.NewRegistry()

	// job doubles as the Pushgateway grouping key, so collectors only
	// carry the remaining labels.
	stepCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataprep_step_total",
			Help: "Total number of pipeline step executions, partitioned by step and status.",
		},
		[]string{"step", "status"},
	)
	stepDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "dataprep_step_duration_seconds",
			Help:       "Duration of pipeline steps in seconds, partitioned by step and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step", "status"},
	)

	rowCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataprep_rows_total",
			Help: "Row-level counts per kind (read, written, skipped, ragged, loaded).",
		},
		[]string{"kind"},
	)

	nullCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dataprep_cells_null_total",
			Help: "Cells written as null because their value was empty or unparseable.",
		},
	)

	if err := reg.Register(stepCounter); err != nil {
		return nil, fmt.Errorf("prompush: register step counter: %w", err)
	}
	if err := reg.Register(stepDuration); err != nil {
		return nil, fmt.Errorf("prompush: register step summary: %w", err)
	}
	if err := reg.Register(rowCounter); err != nil {
		return nil, fmt.Errorf("prompush: register row counter: %w", err)
	}
	if err := reg.Register(nullCounter); err != nil {
		return nil, fmt.Errorf("prompush: register null-cell counter: %w", err)
	}

	return &Backend{
		gatewayURL:   gatewayURL,
		jobName:      jobName,
		reg:          reg,
		stepCounter:  stepCounter,
		stepDuration: stepDuration,
		rowCounter:   rowCounter,
		nullCounter:  nullCounter,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "dataprep_step_total":
		if b.stepCounter == nil {
			return
		}
		step := labels["step"]
		status := labels["status"]
		b.stepCounter.WithLabelValues(step, status).Add(delta)

	case "dataprep_rows_total":
		if b.rowCounter == nil {
			return
		}
		kind := labels["kind"]
		b.rowCounter.WithLabelValues(kind).Add(delta)

	case "dataprep_cells_null_total":
		if b.nullCounter == nil {
			return
		}
		b.nullCounter.Add(delta)

	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name != "dataprep_step_duration_seconds" || b.stepDuration == nil {
		return
	}
	step := labels["step"]
	status := labels["status"]
	b.stepDuration.WithLabelValues(step, status).Observe(value)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
