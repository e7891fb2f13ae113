package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the suite runner.
type Metrics struct {
	// Countries API fetches by operation and outcome
	FetchTotal    *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec

	// Schema validation outcomes
	RecordsValidated *prometheus.CounterVec

	// Check outcomes by suite, mode and result
	ChecksTotal *prometheus.CounterVec

	// Findings raised by suite and kind
	FindingsTotal *prometheus.CounterVec

	SuiteDuration *prometheus.HistogramVec

	// Load harness samples by request name and status class
	LoadRequests        *prometheus.CounterVec
	LoadRequestDuration *prometheus.HistogramVec
	LoadActiveVUs       prometheus.Gauge

	// serve API latency by route and status code
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates and registers all metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics with reg. Tests pass a fresh
// registry so repeated construction does not panic.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atlasqa_countries_fetch_total",
			Help: "Total countries API fetches by operation and outcome",
		}, []string{"operation", "outcome"}),

		FetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "atlasqa_countries_fetch_duration_seconds",
			Help:    "Duration of countries API fetches",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"operation"}),

		RecordsValidated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atlasqa_records_validated_total",
			Help: "Country records validated by result",
		}, []string{"result"}),

		ChecksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atlasqa_checks_total",
			Help: "Checks evaluated by suite, mode and result",
		}, []string{"suite", "mode", "result"}),

		FindingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atlasqa_findings_total",
			Help: "Findings raised by suite and kind",
		}, []string{"suite", "kind"}),

		SuiteDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "atlasqa_suite_duration_seconds",
			Help:    "Wall-clock duration of a suite run",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300},
		}, []string{"suite"}),

		LoadRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atlasqa_load_requests_total",
			Help: "Load harness requests by request name and status class",
		}, []string{"request", "status"}),

		LoadRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "atlasqa_load_request_duration_seconds",
			Help:    "Load harness request durations",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"request"}),

		LoadActiveVUs: factory.NewGauge(prometheus.GaugeOpts{
			Name: "atlasqa_load_active_vus",
			Help: "Virtual users currently allowed to iterate",
		}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "atlasqa_http_request_duration_seconds",
			Help:    "Duration of serve API requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// ObserveFetch records one API fetch.
func (m *Metrics) ObserveFetch(operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.FetchTotal.WithLabelValues(operation, outcome).Inc()
	m.FetchDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// AddValidated records validation results in bulk.
func (m *Metrics) AddValidated(valid, invalid int) {
	if m == nil {
		return
	}
	m.RecordsValidated.WithLabelValues("valid").Add(float64(valid))
	m.RecordsValidated.WithLabelValues("invalid").Add(float64(invalid))
}

// IncrementCheck records one check outcome.
func (m *Metrics) IncrementCheck(suite, mode string, passed bool) {
	if m == nil {
		return
	}
	result := "fail"
	if passed {
		result = "pass"
	}
	m.ChecksTotal.WithLabelValues(suite, mode, result).Inc()
}

// IncrementFinding records one finding.
func (m *Metrics) IncrementFinding(suite, kind string) {
	if m == nil {
		return
	}
	m.FindingsTotal.WithLabelValues(suite, kind).Inc()
}

// ObserveSuite records a suite's duration.
func (m *Metrics) ObserveSuite(suite string, d time.Duration) {
	if m == nil {
		return
	}
	m.SuiteDuration.WithLabelValues(suite).Observe(d.Seconds())
}

// ObserveLoadSample records one load harness request. status is a class such
// as "2xx" or "error".
func (m *Metrics) ObserveLoadSample(request, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.LoadRequests.WithLabelValues(request, status).Inc()
	m.LoadRequestDuration.WithLabelValues(request).Observe(d.Seconds())
}

// SetActiveVUs records the current virtual user target.
func (m *Metrics) SetActiveVUs(n int) {
	if m == nil {
		return
	}
	m.LoadActiveVUs.Set(float64(n))
}

// ObserveHTTP records one serve API request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
