// Package httpapi exposes the string catalog over HTTP.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/its-jojoo/stringscope/internal/metric"
	"github.com/its-jojoo/stringscope/internal/usecase/catalog"
	"github.com/its-jojoo/stringscope/internal/usecase/search"
)

type Deps struct {
	Catalog *catalog.Service
	Search  *search.Service
	Counter Counter
	Metrics *metric.Registry
}

type Options struct {
	// RateLimiter is applied to every request when non-nil.
	RateLimiter *RateLimiter
	// MetricsPath serves the prometheus registry; empty disables it.
	MetricsPath string
}

// NewRouter wires the API routes. The natural-language route is registered
// before {value} so it is never captured as a string value.
func NewRouter(d Deps, opts Options) http.Handler {
	if d.Metrics == nil {
		d.Metrics = metric.NewRegistry()
	}
	h := &handlers{
		catalog: d.Catalog,
		search:  d.Search,
		counter: d.Counter,
		metrics: d.Metrics.Metrics,
	}
	obs := observe(h.metrics)

	router := mux.NewRouter().UseEncodedPath()
	router.Use(obs)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/strings", h.handleCreate).Methods(http.MethodPost)
	api.HandleFunc("/strings", h.handleList).Methods(http.MethodGet)
	api.HandleFunc("/strings/filter-by-natural-language", h.handleNaturalLanguage).Methods(http.MethodGet)
	api.HandleFunc("/strings/{value}", h.handleGet).Methods(http.MethodGet)
	api.HandleFunc("/strings/{value}", h.handleDelete).Methods(http.MethodDelete)

	router.HandleFunc("/", h.handleWelcome).Methods(http.MethodGet)
	router.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	if opts.MetricsPath != "" {
		router.Handle(opts.MetricsPath, d.Metrics.Handler()).Methods(http.MethodGet)
	}

	router.NotFoundHandler = obs(http.HandlerFunc(handleNotFound))
	router.MethodNotAllowedHandler = obs(http.HandlerFunc(handleMethodNotAllowed))

	var handler http.Handler = router
	if opts.RateLimiter != nil {
		handler = opts.RateLimiter.WithMetrics(h.metrics).Middleware(handler)
	}
	return requestID(handler)
}
