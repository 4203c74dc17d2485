package bench

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/arloliu/stringwrite/format"
)

// Metrics holds the Prometheus metrics of benchmark runs.
//
// Metrics are registered in a private registry, so several instances can live
// in one process. WriteTextfile exports them for the node exporter's textfile collector.
type Metrics struct {
	registry *prometheus.Registry

	decodeDuration *prometheus.HistogramVec
	decodesTotal   *prometheus.CounterVec
	iterations     prometheus.Counter
	mismatches     prometheus.Counter
	batchBytes     prometheus.Gauge
	batchStrings   prometheus.Gauge
}

// NewMetrics creates and registers all benchmark metrics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		decodeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stringwrite_decode_duration_seconds",
				Help:    "Time spent decoding one batch, by representation",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
			},
			[]string{"representation"},
		),

		decodesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stringwrite_decodes_total",
				Help: "Total number of batch decodes, by representation",
			},
			[]string{"representation"},
		),

		iterations: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "stringwrite_iterations_total",
				Help: "Total number of completed benchmark iterations",
			},
		),

		mismatches: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "stringwrite_mismatched_iterations_total",
				Help: "Total number of iterations whose representations disagreed",
			},
		),

		batchBytes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "stringwrite_batch_bytes",
				Help: "Size of the value buffer of the most recent batch",
			},
		),

		batchStrings: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "stringwrite_batch_strings",
				Help: "Number of strings in the most recent batch",
			},
		),
	}
}

// Registry returns the registry holding m's metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveDecode records one decode of kind that took d.
func (m *Metrics) ObserveDecode(kind format.Representation, d time.Duration) {
	m.decodeDuration.WithLabelValues(kind.String()).Observe(d.Seconds())
	m.decodesTotal.WithLabelValues(kind.String()).Inc()
}

// ObserveIteration records a completed iteration over a batch.
func (m *Metrics) ObserveIteration(numStrings, batchBytes int, mismatch bool) {
	m.iterations.Inc()
	m.batchStrings.Set(float64(numStrings))
	m.batchBytes.Set(float64(batchBytes))
	if mismatch {
		m.mismatches.Inc()
	}
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	return nil
}
