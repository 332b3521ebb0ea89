// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quote_agent"

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	intents             *prometheus.CounterVec
	negotiationOutcomes *prometheus.CounterVec
	translationLatency  *prometheus.HistogramVec
	gatherer            prometheus.Gatherer
}

// New registers the collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "intents_total",
			Help:      "Responses by classified intent",
		}, []string{"intent"}),
		negotiationOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "negotiation_outcomes_total",
			Help:      "Counter-offer evaluations by outcome",
		}, []string{"outcome"}),
		translationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "translation_latency_seconds",
			Help:      "Latency of normalize/localize model calls",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 15},
		}, []string{"operation", "status"}),
		gatherer: reg,
	}
	reg.MustRegister(m.intents, m.negotiationOutcomes, m.translationLatency)
	return m
}

func (m *Metrics) ObserveIntent(intent string) {
	if m == nil {
		return
	}
	m.intents.WithLabelValues(intent).Inc()
}

func (m *Metrics) ObserveNegotiation(outcome string) {
	if m == nil {
		return
	}
	m.negotiationOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveTranslation records one external call; status is "ok", "error" or "cached".
func (m *Metrics) ObserveTranslation(operation, status string, took time.Duration) {
	if m == nil {
		return
	}
	m.translationLatency.WithLabelValues(operation, status).Observe(took.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// IntentCounter exposes the per-intent counter for assertions.
func (m *Metrics) IntentCounter(intent string) prometheus.Counter {
	return m.intents.WithLabelValues(intent)
}

func (m *Metrics) NegotiationCounter(outcome string) prometheus.Counter {
	return m.negotiationOutcomes.WithLabelValues(outcome)
}
