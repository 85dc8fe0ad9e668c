package observability

import (
	"net/http"
	"time"

	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the keyboard collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	DwellStarts       prometheus.Counter
	DwellCancels      prometheus.Counter
	Activations       *prometheus.CounterVec
	DwellDuration     prometheus.Histogram
	Predictions       *prometheus.CounterVec
	PredictionLatency prometheus.Histogram
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		DwellStarts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dwellkeys_dwell_starts_total",
			Help: "Total number of dwell sessions started",
		}),
		DwellCancels: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dwellkeys_dwell_cancels_total",
			Help: "Total number of dwell sessions cancelled before their deadline",
		}),
		Activations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dwellkeys_activations_total",
			Help: "Total number of target activations",
		}, []string{"source"}),
		DwellDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dwellkeys_dwell_duration_seconds",
			Help:    "Configured dwell length of started sessions",
			Buckets: []float64{0.25, 0.5, 0.8, 1, 1.5, 2, 3, 5},
		}),
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dwellkeys_predictions_total",
			Help: "Total number of prediction lookups",
		}, []string{"result"}),
		PredictionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dwellkeys_prediction_duration_seconds",
			Help:    "Latency of prediction lookups",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
	}

	m.registry.MustRegister(
		m.DwellStarts,
		m.DwellCancels,
		m.Activations,
		m.DwellDuration,
		m.Predictions,
		m.PredictionLatency,
	)
	return m
}

// Hooks returns lifecycle hooks feeding the dwell collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDwellStart: func(e *domain.DwellEvent) {
			m.DwellStarts.Inc()
			m.DwellDuration.Observe(e.Duration.Seconds())
		},
		OnDwellCancel: func(*domain.DwellEvent) {
			m.DwellCancels.Inc()
		},
		OnActivate: func(e *domain.DwellEvent) {
			m.Activations.WithLabelValues(string(e.Source)).Inc()
		},
	}
}

// ObservePrediction records one lookup.
func (m *Metrics) ObservePrediction(results int, elapsed time.Duration) {
	label := "hit"
	if results == 0 {
		label = "empty"
	}
	m.Predictions.WithLabelValues(label).Inc()
	m.PredictionLatency.Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
