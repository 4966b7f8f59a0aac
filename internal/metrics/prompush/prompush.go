// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package. All Prometheus-specific dependencies are contained
// here so the rest of the pipeline stays decoupled from the metrics
// system in use.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"orderetl/internal/metrics"
)

// Backend pushes pipeline metrics to a Prometheus Pushgateway.
type Backend struct {
	gatewayURL string
	jobName    string
	reg        *prometheus.Registry

	stepCounter   *prometheus.CounterVec
	stepDuration  *prometheus.SummaryVec
	recordCounter *prometheus.CounterVec
}

// NewBackend constructs a Pushgateway backend. jobName doubles as the
// Pushgateway grouping key.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "orderetl"
	}

	reg := prometheus.NewRegistry()

	stepCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_step_total",
			Help: "Pipeline step executions, partitioned by step and status.",
		},
		[]string{"step", "status"},
	)
	stepDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "pipeline_step_duration_seconds",
			Help:       "Pipeline step duration in seconds, partitioned by step and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step", "status"},
	)
	recordCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_records_total",
			Help: "Entities flowing through the pipeline, partitioned by step and outcome.",
		},
		[]string{"step", "status"},
	)
	reg.MustRegister(stepCounter, stepDuration, recordCounter)

	return &Backend{
		gatewayURL:    gatewayURL,
		jobName:       jobName,
		reg:           reg,
		stepCounter:   stepCounter,
		stepDuration:  stepDuration,
		recordCounter: recordCounter,
	}, nil
}

// IncCounter implements metrics.Backend.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "pipeline_step_total":
		b.stepCounter.WithLabelValues(labels["step"], labels["status"]).Add(delta)
	case "pipeline_records_total":
		b.recordCounter.WithLabelValues(labels["step"], labels["status"]).Add(delta)
	}
}

// ObserveHistogram implements metrics.Backend.
func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name == "pipeline_step_duration_seconds" {
		b.stepDuration.WithLabelValues(labels["step"], labels["status"]).Observe(value)
	}
}

// Flush pushes the registry to the gateway.
func (b *Backend) Flush() error {
	if err := push.New(b.gatewayURL, b.jobName).Gatherer(b.reg).Push(); err != nil {
		return fmt.Errorf("prompush: push to %s: %w", b.gatewayURL, err)
	}
	return nil
}
