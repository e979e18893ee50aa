// Package metrics defines the Prometheus metric collectors used across the
// pipeline and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the pipeline.
type Metrics struct {
	FilesDiscoveredTotal prometheus.Counter
	FilesProcessedTotal  *prometheus.CounterVec
	RecordsTotal         *prometheus.CounterVec
	TokensTotal          prometheus.Counter
	BytesReadTotal       prometheus.Counter
	FileDuration         prometheus.Histogram
	DistinctTokens       prometheus.Gauge
	ActiveWorkers        prometheus.Gauge
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		FilesDiscoveredTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wordfreq_files_discovered_total",
				Help: "Total source files discovered under the corpus root.",
			},
		),
		FilesProcessedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordfreq_files_processed_total",
				Help: "Total source files by processing status (ok, skipped).",
			},
			[]string{"status"},
		),
		RecordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordfreq_records_total",
				Help: "Total records by decode status (ok, bad_encoding).",
			},
			[]string{"status"},
		),
		TokensTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wordfreq_tokens_total",
				Help: "Total tokens recorded into the frequency table.",
			},
		),
		BytesReadTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wordfreq_bytes_read_total",
				Help: "Total decompressed bytes read from source files.",
			},
		),
		FileDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wordfreq_file_duration_seconds",
				Help:    "Per-file processing time in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
		),
		DistinctTokens: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordfreq_distinct_tokens",
				Help: "Number of distinct tokens in the merged frequency table.",
			},
		),
		ActiveWorkers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordfreq_active_workers",
				Help: "Number of pipeline workers currently processing files.",
			},
		),
	}

	prometheus.MustRegister(
		m.FilesDiscoveredTotal,
		m.FilesProcessedTotal,
		m.RecordsTotal,
		m.TokensTotal,
		m.BytesReadTotal,
		m.FileDuration,
		m.DistinctTokens,
		m.ActiveWorkers,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
