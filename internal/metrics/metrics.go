// Package metrics is a small, backend-agnostic abstraction for recording
// pipeline counters and step timings. The global backend defaults to a
// no-op, so instrumentation calls are always safe even when no metrics
// system is configured. Concrete backends live in subpackages.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface a metrics system must implement.
type Backend interface {
	IncCounter(name string, delta float64, labels Labels)
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes buffered metrics for push-style backends.
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) Flush() error                             { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the current one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error { return backend.Flush() }

// RecordStep measures one pipeline step: a completion counter partitioned
// by status plus its duration.
func RecordStep(job, step string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	labels := Labels{"job": job, "step": step, "status": status}
	backend.IncCounter("pipeline_step_total", 1, labels)
	backend.ObserveHistogram("pipeline_step_duration_seconds", time.Since(start).Seconds(), labels)
}

// CountRecords tracks entity counts flowing through a step, partitioned by
// outcome ("processed", "skipped").
func CountRecords(job, step, outcome string, n int) {
	backend.IncCounter("pipeline_records_total", float64(n),
		Labels{"job": job, "step": step, "status": outcome})
}
