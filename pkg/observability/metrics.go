package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors on a private registry, so several engines (or tests)
// never collide on the global one.
type Metrics struct {
	registry          *prometheus.Registry
	iterations        prometheus.Counter
	logLikelihood     prometheus.Gauge
	iterationDuration prometheus.Histogram
	classifications   *prometheus.CounterVec
}

// NewMetrics creates and registers the markov collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "markov_training_iterations_total",
			Help: "Total number of completed Baum-Welch iterations",
		}),
		logLikelihood: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "markov_corpus_log_likelihood",
			Help: "Corpus log-likelihood of the model entering the last completed iteration",
		}),
		iterationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "markov_iteration_duration_seconds",
			Help:    "Duration of Baum-Welch iterations",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		classifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "markov_classifications_total",
				Help: "Total number of sequences classified, by selected model",
			},
			[]string{"model"},
		),
	}
	m.registry.MustRegister(m.iterations, m.logLikelihood, m.iterationDuration, m.classifications)
	return m
}

// Registry exposes the underlying registry, e.g. to add process collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// TrainingHooks records iteration count, duration and log-likelihood.
func (m *Metrics) TrainingHooks() domain.TrainingHooks {
	return domain.TrainingHooks{
		OnIterationEnd: func(ctx context.Context, e *domain.IterationEvent) {
			m.iterations.Inc()
			m.logLikelihood.Set(e.LogLikelihood)
			m.iterationDuration.Observe(e.Duration.Seconds())
		},
	}
}

// ClassificationHooks counts selections per model.
func (m *Metrics) ClassificationHooks() domain.ClassificationHooks {
	return domain.ClassificationHooks{
		OnSelect: func(ctx context.Context, e *domain.ClassificationEvent) {
			m.classifications.WithLabelValues(e.Selection.Model).Inc()
		},
	}
}
