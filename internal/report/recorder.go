package report

import (
	"context"
	"log/slog"

	"atlasqa/internal/platform/logger"
	"atlasqa/internal/platform/metrics"
)

// Recorder fans a finished report out to every configured store and
// publisher. Sink failures are logged and never change the report.
type Recorder struct {
	stores     []Store
	publishers []Publisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// RecorderOption configures the Recorder.
type RecorderOption func(*Recorder)

// WithStore adds a store. Nil stores are skipped so optional backends can be
// passed straight from their constructors.
func WithStore(s Store) RecorderOption {
	return func(r *Recorder) {
		if s != nil {
			r.stores = append(r.stores, s)
		}
	}
}

// WithPublisher adds a publisher. Nil publishers are skipped.
func WithPublisher(p Publisher) RecorderOption {
	return func(r *Recorder) {
		if p != nil {
			r.publishers = append(r.publishers, p)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		r.logger = l
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) RecorderOption {
	return func(r *Recorder) {
		r.metrics = m
	}
}

// NewRecorder builds a Recorder.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{logger: logger.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record counts the report's checks and findings, then hands it to each sink.
// It returns the number of sinks that failed.
func (rec *Recorder) Record(ctx context.Context, r *Report) int {
	for _, c := range r.Checks {
		rec.metrics.IncrementCheck(r.Suite, string(c.Mode), c.Passed)
	}
	for _, f := range r.Findings {
		rec.metrics.IncrementFinding(r.Suite, string(f.Kind))
	}
	rec.metrics.ObserveSuite(r.Suite, r.Duration())

	failures := 0
	for _, s := range rec.stores {
		if err := s.Save(ctx, r); err != nil {
			failures++
			rec.logger.ErrorContext(ctx, "failed to store report",
				"suite", r.Suite,
				"run_id", r.RunID,
				"error", err,
			)
		}
	}
	for _, p := range rec.publishers {
		if err := p.Publish(ctx, r); err != nil {
			failures++
			rec.logger.ErrorContext(ctx, "failed to publish report",
				"suite", r.Suite,
				"run_id", r.RunID,
				"error", err,
			)
		}
	}
	return failures
}
