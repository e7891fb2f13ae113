// Package httptransport is the serve API: health, metrics, stored reports and
// on-demand suite runs.
package httptransport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"atlasqa/internal/platform/logger"
	"atlasqa/internal/platform/metrics"
	"atlasqa/internal/platform/middleware"
	"atlasqa/internal/report"
	"atlasqa/pkg/platform/httputil"
	"atlasqa/pkg/platform/sentinel"
	"atlasqa/pkg/requestcontext"
)

const (
	defaultListLimit = 20
	maxListLimit     = 200
	readTimeout      = 15 * time.Second
	probeTimeout     = 5 * time.Second
)

// Runner executes a suite by name.
type Runner interface {
	Run(ctx context.Context, name string) (*report.Report, error)
}

// Probe checks one dependency for /readyz.
type Probe func(ctx context.Context) error

// Handler serves the API.
type Handler struct {
	runner   Runner
	reports  report.Store
	probes   map[string]Probe
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Option configures the Handler.
type Option func(*Handler)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

// WithMetrics records request latency.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithGatherer sets what /metrics exposes. The default is the global registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(h *Handler) {
		h.gatherer = g
	}
}

// WithProbe adds a readiness dependency.
func WithProbe(name string, p Probe) Option {
	return func(h *Handler) {
		if p != nil {
			h.probes[name] = p
		}
	}
}

// New builds a Handler.
func New(runner Runner, reports report.Store, opts ...Option) *Handler {
	h := &Handler{
		runner:   runner,
		reports:  reports,
		probes:   make(map[string]Probe),
		gatherer: prometheus.DefaultGatherer,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Router mounts every endpoint. Suite runs are not bounded by the read
// timeout; a perf run takes minutes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Latency(h.metrics))

	r.Get("/healthz", h.handleHealth)
	r.Get("/readyz", h.handleReady)
	r.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(readTimeout))
		r.Use(middleware.ContentTypeJSON)
		r.Get("/reports", h.handleListReports)
		r.Get("/reports/{suite}/latest", h.handleLatestReport)
	})
	r.With(middleware.ContentTypeJSON).Post("/runs/{suite}", h.handleRun)
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	names := make([]string, 0, len(h.probes))
	for name := range h.probes {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	checks := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.probes[name](ctx); err != nil {
			h.logger.WarnContext(ctx, "readiness probe failed",
				"dependency", name,
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			checks[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "unavailable"
	}
	httputil.WriteJSON(w, status, ReadyResponse{Status: overall, Checks: checks})
}

func (h *Handler) handleListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reports, err := h.reports.List(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list reports",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromReports(reports))
}

func (h *Handler) handleLatestReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	suite := chi.URLParam(r, "suite")
	rep, err := h.reports.Latest(ctx, suite)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rep)
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	suite := chi.URLParam(r, "suite")
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	rep, err := h.runner.Run(ctx, suite)
	if err != nil {
		h.logger.ErrorContext(ctx, "suite run failed",
			"suite", suite,
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "suite run via API",
		"suite", suite,
		"request_id", requestID,
		"run_id", rep.RunID,
		"status", rep.Status(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, rep)
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultListLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("limit must be a positive integer: %w", sentinel.ErrInvalidInput)
	}
	return min(n, maxListLimit), nil
}
