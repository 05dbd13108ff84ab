// Package metrics exposes Prometheus metrics for the statistics pipeline and
// the HTTP layer on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OperationLabel = "operation"
	CityLabel      = "city"
	OutcomeLabel   = "outcome"
	RouteLabel     = "route"
	StatusLabel    = "status"
)

// Store records pipeline and HTTP metrics.
type Store struct {
	registry     *prometheus.Registry
	PipelineRuns *prometheus.CounterVec
	PipelineTime *prometheus.HistogramVec
	RowsLoaded   *prometheus.GaugeVec
	HTTPRequests *prometheus.CounterVec
}

// NewStore registers all collectors, plus the Go runtime collector, on a new registry.
func NewStore() *Store {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// 5ms .. ~10s, doubling.
	buckets := prometheus.ExponentialBuckets(0.005, 2, 12)

	factory := promauto.With(reg)
	return &Store{
		registry: reg,
		PipelineRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bikeshare_pipeline_runs_total",
			Help: "Pipeline executions by operation, city and outcome",
		}, []string{OperationLabel, CityLabel, OutcomeLabel}),
		PipelineTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bikeshare_pipeline_seconds",
			Help:    "Wall time of a pipeline execution, load included",
			Buckets: buckets,
		}, []string{OperationLabel}),
		RowsLoaded: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bikeshare_rows_loaded",
			Help: "Rows decoded by the most recent load of each city",
		}, []string{CityLabel}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bikeshare_http_requests_total",
			Help: "HTTP requests by route pattern and status code",
		}, []string{RouteLabel, StatusLabel}),
	}
}

// Registry returns the registry holding every collector of the store.
func (s *Store) Registry() *prometheus.Registry {
	return s.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (s *Store) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}

// ObservePipeline counts one pipeline run and records its duration.
func (s *Store) ObservePipeline(operation, city, outcome string, d time.Duration) {
	s.PipelineRuns.With(prometheus.Labels{OperationLabel: operation, CityLabel: city, OutcomeLabel: outcome}).Inc()
	s.PipelineTime.With(prometheus.Labels{OperationLabel: operation}).Observe(d.Seconds())
}

// SetRowsLoaded records the row count of the latest load for city.
func (s *Store) SetRowsLoaded(city string, n int) {
	s.RowsLoaded.With(prometheus.Labels{CityLabel: city}).Set(float64(n))
}

// IncHTTPRequest counts one served request.
func (s *Store) IncHTTPRequest(route string, status int) {
	s.HTTPRequests.With(prometheus.Labels{RouteLabel: route, StatusLabel: strconv.Itoa(status)}).Inc()
}
