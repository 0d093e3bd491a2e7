// Package metrics holds the Prometheus collectors for the HTTP API and the
// overdue-invoice job.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "facturo"

// Account outcomes of one overdue sweep.
const (
	ResultNotified = "notified"
	ResultSkipped  = "skipped"
	ResultFailed   = "failed"
)

type Metrics struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	overdueRuns     prometheus.Counter
	overdueAccounts *prometheus.CounterVec
	overdueLastRun  prometheus.Gauge
	overdueDuration prometheus.Histogram
}

// New builds a private registry with the process and Go runtime collectors
// plus the application collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	m := &Metrics{
		registry: reg,
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),
		overdueRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overdue_runs_total",
			Help:      "Total overdue-invoice sweeps.",
		}),
		overdueAccounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overdue_accounts_total",
			Help:      "Accounts processed by the overdue sweep, by result.",
		}, []string{"result"}),
		overdueLastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overdue_last_run_timestamp_seconds",
			Help:      "Unix time the last overdue sweep finished.",
		}),
		overdueDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "overdue_run_duration_seconds",
			Help:      "Duration of overdue sweeps.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}
	reg.MustRegister(
		m.httpInFlight, m.httpRequests, m.httpDuration,
		m.overdueRuns, m.overdueAccounts, m.overdueLastRun, m.overdueDuration,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// TrackRequest marks a request in flight and returns the function recording
// its outcome.
func (m *Metrics) TrackRequest(method, route string) func(status int) {
	if m == nil {
		return func(int) {}
	}
	start := time.Now()
	m.httpInFlight.Inc()
	return func(status int) {
		m.httpInFlight.Dec()
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveOverdueRun records one finished sweep.
func (m *Metrics) ObserveOverdueRun(notified, skipped, failed int, took time.Duration, finished time.Time) {
	if m == nil {
		return
	}
	m.overdueRuns.Inc()
	m.overdueAccounts.WithLabelValues(ResultNotified).Add(float64(notified))
	m.overdueAccounts.WithLabelValues(ResultSkipped).Add(float64(skipped))
	m.overdueAccounts.WithLabelValues(ResultFailed).Add(float64(failed))
	m.overdueDuration.Observe(took.Seconds())
	m.overdueLastRun.Set(float64(finished.Unix()))
}
