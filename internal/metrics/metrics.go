// Package metrics exposes Prometheus instrumentation for solve outcomes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts solves by terminal status and tracks end-to-end durations.
type Recorder struct {
	solvesTotal   *prometheus.CounterVec
	solveDuration prometheus.Histogram
}

func New() *Recorder {
	return &Recorder{
		solvesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bto_solves_total",
				Help: "Total optimisation solves by terminal solver status",
			},
			[]string{"status"},
		),
		solveDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bto_solve_duration_seconds",
				Help:    "End-to-end build+solve+extract duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
			},
		),
	}
}

// ObserveSolve records one finished solve.
func (r *Recorder) ObserveSolve(status string, d time.Duration) {
	if r == nil {
		return
	}
	r.solvesTotal.WithLabelValues(status).Inc()
	r.solveDuration.Observe(d.Seconds())
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
