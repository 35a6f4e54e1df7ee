// Package metric holds the prometheus collectors exported on /metrics.
package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stringscope"

// Metrics contains the service collectors
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RateLimited     prometheus.Counter
	StringsCreated  prometheus.Counter
	StringsDeleted  prometheus.Counter
	NLQueries       *prometheus.CounterVec
}

// Registry wraps a private prometheus registry so tests and multiple
// servers in one process never collide on the default registerer.
type Registry struct {
	prometheusRegistry *prometheus.Registry
	Metrics            *Metrics
}

func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		}),
		StringsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "strings",
			Name:      "created_total",
			Help:      "Strings analyzed and stored",
		}),
		StringsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "strings",
			Name:      "deleted_total",
			Help:      "Strings deleted",
		}),
		NLQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "nl",
				Name:      "queries_total",
				Help:      "Natural-language queries by outcome (interpreted, uninterpretable)",
			},
			[]string{"outcome"},
		),
	}
}

func NewRegistry() *Registry {
	r := &Registry{
		prometheusRegistry: prometheus.NewRegistry(),
		Metrics:            NewMetrics(),
	}
	m := r.Metrics
	r.prometheusRegistry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.RateLimited,
		m.StringsCreated,
		m.StringsDeleted,
		m.NLQueries,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}

// Handler serves the registry in the prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.prometheusRegistry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished request. route is the mux path
// template, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) NLQuery(interpreted bool) {
	outcome := "interpreted"
	if !interpreted {
		outcome = "uninterpretable"
	}
	m.NLQueries.WithLabelValues(outcome).Inc()
}
