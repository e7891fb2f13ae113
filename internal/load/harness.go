package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"atlasqa/internal/platform/logger"
	"atlasqa/internal/platform/metrics"
)

const defaultTick = 250 * time.Millisecond

// Harness runs scenarios against one base URL.
type Harness struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tick       time.Duration
}

// Option configures the Harness.
type Option func(*Harness)

// WithHTTPClient replaces the HTTP client shared by all users.
func WithHTTPClient(hc *http.Client) Option {
	return func(h *Harness) {
		h.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = l
	}
}

// WithMetrics exports samples as Prometheus series.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Harness) {
		h.metrics = m
	}
}

// WithTick sets how often staged runs recompute the user target and how long
// an idle user waits before checking again.
func WithTick(d time.Duration) Option {
	return func(h *Harness) {
		if d > 0 {
			h.tick = d
		}
	}
}

// New creates a harness for baseURL.
func New(baseURL string, opts ...Option) *Harness {
	h := &Harness{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger.Discard(),
		tick:       defaultTick,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// collector gathers samples from all users.
type collector struct {
	mu      sync.Mutex
	samples []Sample
}

func (c *collector) add(s ...Sample) {
	c.mu.Lock()
	c.samples = append(c.samples, s...)
	c.mu.Unlock()
}

func (c *collector) snapshot() []Sample {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Sample(nil), c.samples...)
}

// Run executes the scenario until the options are exhausted or ctx is
// cancelled. A cancelled ctx still yields a summary of what ran.
func (h *Harness) Run(ctx context.Context, scenario Scenario, opts Options) (*Summary, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid load options: %w", err)
	}
	if len(scenario.Requests) == 0 {
		return nil, errors.New("scenario has no requests")
	}

	if d := opts.TotalDuration(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	h.logger.InfoContext(ctx, "load run starting",
		"scenario", scenario.Name,
		"max_vus", opts.MaxVUs(),
		"duration", opts.TotalDuration(),
		"iterations", opts.Iterations,
		"staged", opts.Staged(),
	)

	var (
		samples    collector
		iterations atomic.Int64
		active     atomic.Int64
		wg         sync.WaitGroup
	)
	start := time.Now()

	active.Store(int64(opts.targetAt(0)))
	h.metrics.SetActiveVUs(opts.targetAt(0))
	if opts.Staged() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.ramp(ctx, opts, start, &active)
		}()
	}

	for vu := 0; vu < opts.MaxVUs(); vu++ {
		wg.Add(1)
		go func(vu int) {
			defer wg.Done()
			for ctx.Err() == nil {
				if int64(vu) >= active.Load() {
					sleep(ctx, h.tick)
					continue
				}
				if opts.Iterations > 0 && !opts.Staged() {
					if iterations.Add(1) > int64(opts.Iterations) {
						iterations.Add(-1)
						return
					}
				} else {
					iterations.Add(1)
				}
				samples.add(h.iterate(ctx, scenario)...)
			}
		}(vu)
	}
	wg.Wait()

	elapsed := time.Since(start)
	sum := Summarize(scenario, samples.snapshot(), int(iterations.Load()), elapsed, opts.Thresholds)
	h.logger.InfoContext(ctx, "load run finished",
		"scenario", scenario.Name,
		"iterations", sum.Iterations,
		"requests", sum.Requests,
		"failure_rate", sum.FailureRate,
		"p95", sum.P95,
		"thresholds_passed", sum.Passed(),
	)
	return sum, nil
}

func (h *Harness) ramp(ctx context.Context, opts Options, start time.Time, active *atomic.Int64) {
	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.metrics.SetActiveVUs(0)
			return
		case <-ticker.C:
			target := opts.targetAt(time.Since(start))
			active.Store(int64(target))
			h.metrics.SetActiveVUs(target)
		}
	}
}

// iterate sends the scenario's batch concurrently and returns one sample per
// request in batch order.
func (h *Harness) iterate(ctx context.Context, scenario Scenario) []Sample {
	out := make([]Sample, len(scenario.Requests))
	var g errgroup.Group
	for i, req := range scenario.Requests {
		g.Go(func() error {
			out[i] = h.do(ctx, i, req)
			return nil
		})
	}
	_ = g.Wait()

	// requests cut short by the end of the run are not samples
	kept := out[:0]
	for _, s := range out {
		if s.Err != nil && ctx.Err() != nil {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

func (h *Harness) do(ctx context.Context, index int, req Request) (s Sample) {
	s = Sample{Request: req.Name, Index: index}
	start := time.Now()
	defer func() {
		s.Duration = time.Since(start)
		h.metrics.ObserveLoadSample(req.Name, s.statusClass(), s.Duration)
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+req.Path, nil)
	if err != nil {
		s.Err = err
		return s
	}
	resp, err := h.httpClient.Do(httpReq)
	if err != nil {
		s.Err = err
		return s
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	s.Status = resp.StatusCode
	return s
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
