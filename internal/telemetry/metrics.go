// Package telemetry exposes Prometheus metrics for the bridge.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for the transactions counter.
const (
	OutcomeSuccess     = "success"
	OutcomeFailure     = "failure"
	OutcomeUnavailable = "unavailable"
	OutcomeBusy        = "busy"
)

// Metrics collects counters for transaction scripts and the session gate.
type Metrics struct {
	transactions *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	gateWait     prometheus.Histogram

	registry *prometheus.Registry
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		transactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sapbridge",
				Name:      "transactions_total",
				Help:      "Transaction scripts by name and outcome",
			},
			[]string{"transaction", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sapbridge",
				Name:      "transaction_duration_seconds",
				Help:      "Wall time of one transaction script, connect to status read",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60},
			},
			[]string{"transaction"},
		),
		gateWait: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "sapbridge",
				Name:      "gate_wait_seconds",
				Help:      "Time spent waiting for the session gate",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 30},
			},
		),
	}

	registry.MustRegister(
		m.transactions,
		m.duration,
		m.gateWait,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveTransaction records one finished (or rejected) script.
func (m *Metrics) ObserveTransaction(transaction, outcome string, elapsed time.Duration) {
	m.transactions.WithLabelValues(transaction, outcome).Inc()
	if outcome == OutcomeSuccess || outcome == OutcomeFailure {
		m.duration.WithLabelValues(transaction).Observe(elapsed.Seconds())
	}
}

// ObserveGateWait records how long a request waited for the session gate.
func (m *Metrics) ObserveGateWait(elapsed time.Duration) {
	m.gateWait.Observe(elapsed.Seconds())
}

// Handler serves the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
