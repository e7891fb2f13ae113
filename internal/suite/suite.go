// Package suite runs the named QA suites. Each run produces a report.Report
// that is handed to the recorder and logged.
package suite

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"atlasqa/internal/browser"
	"atlasqa/internal/countries/aggregate"
	"atlasqa/internal/countries/models"
	"atlasqa/internal/load"
	"atlasqa/internal/platform/logger"
	"atlasqa/internal/platform/metrics"
	"atlasqa/internal/report"
	"atlasqa/internal/sport"
	"atlasqa/pkg/platform/sentinel"
	"atlasqa/pkg/requestcontext"
)

// Suite names.
const (
	Schema    = "schema"
	Count     = "count"
	Languages = "languages"
	E2E       = "e2e"
	Load      = "load"
	Perf      = "perf"
	Search    = "search"
	Race      = "race"
)

// APISuites are the suites `run all` executes.
var APISuites = []string{Schema, Count, Languages, E2E}

// Names lists every suite in run order.
func Names() []string {
	return []string{Schema, Count, Languages, E2E, Load, Perf, Search, Race}
}

// Fetcher is the part of the countries client the API suites need.
type Fetcher interface {
	FetchAll(ctx context.Context, fields []string) []models.Country
	FetchByCode(ctx context.Context, code string) (models.Country, bool)
}

// LoadRunner drives a load scenario.
type LoadRunner interface {
	Run(ctx context.Context, scenario load.Scenario, opts load.Options) (*load.Summary, error)
}

// PageOpener hands out a browser page and a func that releases it.
type PageOpener interface {
	OpenPage(ctx context.Context) (browser.Page, func() error, error)
}

// Recorder receives every finished report.
type Recorder interface {
	Record(ctx context.Context, r *report.Report) int
}

// Runner executes suites against its collaborators. Suites whose
// collaborator is missing fail with sentinel.ErrUnavailable.
type Runner struct {
	fetcher  Fetcher
	loader   LoadRunner
	pages    PageOpener
	recorder Recorder
	logger   *slog.Logger
	metrics  *metrics.Metrics

	strict       bool
	expected     int
	fixtures     bool
	loadVUs      int
	loadDuration time.Duration
	sportOpts    []sport.Option
}

// Option configures the Runner.
type Option func(*Runner)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithRecorder sets where finished reports go.
func WithRecorder(rec Recorder) Option {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// WithLoadRunner enables the load and perf suites.
func WithLoadRunner(l LoadRunner) Option {
	return func(r *Runner) {
		r.loader = l
	}
}

// WithPageOpener enables the browser suites.
func WithPageOpener(p PageOpener) Option {
	return func(r *Runner) {
		r.pages = p
	}
}

// WithStrict enforces gating checks.
func WithStrict(strict bool) Option {
	return func(r *Runner) {
		r.strict = strict
	}
}

// WithExpectedCountries overrides the required country count.
func WithExpectedCountries(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.expected = n
		}
	}
}

// WithFixtures allows the browser suites to fall back to demo data. Reports
// built from it are flagged.
func WithFixtures(enabled bool) Option {
	return func(r *Runner) {
		r.fixtures = enabled
	}
}

// WithLoadOverrides replaces the VU count and duration of the fixed-mode load
// profile. Zero values keep the profile's own.
func WithLoadOverrides(vus int, duration time.Duration) Option {
	return func(r *Runner) {
		r.loadVUs = vus
		r.loadDuration = duration
	}
}

// WithSportOptions passes options to every sport page the runner builds.
func WithSportOptions(opts ...sport.Option) Option {
	return func(r *Runner) {
		r.sportOpts = append(r.sportOpts, opts...)
	}
}

// New builds a Runner over fetcher.
func New(fetcher Fetcher, opts ...Option) *Runner {
	r := &Runner{
		fetcher:  fetcher,
		logger:   logger.Discard(),
		expected: aggregate.DefaultExpected,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type suiteFunc func(ctx context.Context, rep *report.Report) error

func (r *Runner) suites() map[string]suiteFunc {
	return map[string]suiteFunc{
		Schema:    r.runSchema,
		Count:     r.runCount,
		Languages: r.runLanguages,
		E2E:       r.runE2E,
		Load:      r.runLoad,
		Perf:      r.runPerf,
		Search:    r.runSearch,
		Race:      r.runRace,
	}
}

// Run executes one suite, records the report and returns it. An unknown name
// is sentinel.ErrInvalidInput. A suite that could not run at all returns an
// error and no report; check failures never do.
func (r *Runner) Run(ctx context.Context, name string) (*report.Report, error) {
	fn, ok := r.suites()[name]
	if !ok {
		return nil, fmt.Errorf("unknown suite %q: %w", name, sentinel.ErrInvalidInput)
	}
	ctx, runID := requestcontext.EnsureRunID(ctx)
	ctx = requestcontext.WithSuite(ctx, name)

	r.logger.InfoContext(ctx, "suite started", "suite", name, "run_id", runID, "strict", r.strict)
	rep := report.New(ctx, name, r.strict)
	if err := fn(ctx, rep); err != nil {
		r.logger.ErrorContext(ctx, "suite aborted", "suite", name, "run_id", runID, "error", err)
		return nil, fmt.Errorf("run %s suite: %w", name, err)
	}
	rep.Finish(ctx)

	if r.recorder != nil {
		if failed := r.recorder.Record(ctx, rep); failed > 0 {
			r.logger.WarnContext(ctx, "report sinks failed", "suite", name, "failed_sinks", failed)
		}
	}

	passed, failed := rep.Counts()
	r.logger.InfoContext(ctx, "suite finished",
		"suite", name,
		"run_id", runID,
		"status", rep.Status(),
		"checks_passed", passed,
		"checks_failed", failed,
		"findings", len(rep.Findings),
		"fixture", rep.Fixture,
		"duration", rep.Duration(),
	)
	return rep, nil
}

// RunAll executes the API suites concurrently under one run ID. Reports come
// back in APISuites order.
func (r *Runner) RunAll(ctx context.Context) ([]*report.Report, error) {
	ctx, _ = requestcontext.EnsureRunID(ctx)

	reports := make([]*report.Report, len(APISuites))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range APISuites {
		g.Go(func() error {
			rep, err := r.Run(gctx, name)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
