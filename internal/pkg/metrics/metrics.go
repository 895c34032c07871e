// Package metrics holds the service's prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"waterdelivery/internal/core/domain/model/customer"
	"waterdelivery/internal/core/domain/model/ledger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "waterdelivery"

type Metrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec

	// Postings counts committed ledger entries by action.
	Postings *prometheus.CounterVec
	// CounterUpdates counts committed customer counter writes.
	CounterUpdates prometheus.Counter

	// DriftedCustomers is the number of customers whose counters disagreed
	// with their ledger in the last audit run.
	DriftedCustomers prometheus.Gauge
	AuditRuns        *prometheus.CounterVec
	AuditDuration    prometheus.Histogram

	gatherer prometheus.Gatherer
}

// New registers all collectors with reg. Passing a fresh prometheus.Registry
// keeps tests isolated from the default registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"handler"}),
		Postings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "postings_total",
			Help:      "Committed ledger entries by action.",
		}, []string{"action"}),
		CounterUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "counter_updates_total",
			Help:      "Committed customer counter updates.",
		}),
		DriftedCustomers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "drifted_customers",
			Help:      "Customers whose counters disagreed with the ledger in the last audit run.",
		}),
		AuditRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "runs_total",
			Help:      "Reconciliation audit runs by result.",
		}, []string{"result"}),
		AuditDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "run_duration_seconds",
			Help:      "Duration of a reconciliation audit run.",
			Buckets:   prometheus.DefBuckets,
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.Requests,
		m.LatencyMS,
		m.Postings,
		m.CounterUpdates,
		m.DriftedCustomers,
		m.AuditRuns,
		m.AuditDuration,
	)
	return m
}

// Committed implements the unit of work's commit observer. It only sees
// aggregates of transactions that actually committed.
func (m *Metrics) Committed(aggregates []any) {
	for _, a := range aggregates {
		switch a := a.(type) {
		case *ledger.Entry:
			m.Postings.WithLabelValues(a.Action().String()).Inc()
		case *customer.Customer:
			m.CounterUpdates.Inc()
		}
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(handler string, status int, elapsed time.Duration) {
	m.Requests.WithLabelValues(handler, strconv.Itoa(status)).Inc()
	m.LatencyMS.WithLabelValues(handler).Observe(float64(elapsed.Milliseconds()))
}

// ObserveAudit records one finished audit run.
func (m *Metrics) ObserveAudit(drifted int, failed bool, elapsed time.Duration) {
	result := "ok"
	if failed {
		result = "failed"
	}
	m.AuditRuns.WithLabelValues(result).Inc()
	m.AuditDuration.Observe(elapsed.Seconds())
	if !failed {
		m.DriftedCustomers.Set(float64(drifted))
	}
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
