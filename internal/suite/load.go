package suite

import (
	"context"
	"fmt"
	"time"

	"atlasqa/internal/load"
	"atlasqa/internal/report"
	"atlasqa/pkg/platform/sentinel"
)

func (r *Runner) runLoad(ctx context.Context, rep *report.Report) error {
	scenario, opts := load.LoadProfile()
	if r.loadVUs > 0 {
		opts.VUs = r.loadVUs
	}
	if r.loadDuration > 0 {
		opts.Duration = r.loadDuration
	}
	return r.runScenario(ctx, rep, scenario, opts)
}

func (r *Runner) runPerf(ctx context.Context, rep *report.Report) error {
	scenario, opts := load.PerformanceProfile()
	return r.runScenario(ctx, rep, scenario, opts)
}

// runScenario turns a load summary into checks: every per-request check is
// documented, every threshold is enforced.
func (r *Runner) runScenario(ctx context.Context, rep *report.Report, scenario load.Scenario, opts load.Options) error {
	if r.loader == nil {
		return fmt.Errorf("load harness not configured: %w", sentinel.ErrUnavailable)
	}
	sum, err := r.loader.Run(ctx, scenario, opts)
	if err != nil {
		return fmt.Errorf("run %s scenario: %w", scenario.Name, err)
	}

	rep.Notef("%s: %d iterations, %d requests in %s", sum.Scenario, sum.Iterations, sum.Requests, sum.Elapsed.Round(time.Millisecond))
	rep.Notef("http_req_duration p(50)=%s p(95)=%s max=%s", sum.P50, sum.P95, sum.Max)
	rep.Notef("http_req_failed %.2f%% (%d/%d, %d retryable)", sum.FailureRate*100, sum.Failures, sum.Requests, sum.Retryable)

	for _, c := range sum.Checks {
		rep.Document(c.Name, c.Fails == 0)
		if c.Fails > 0 {
			rep.Notef("check %q: %d passed, %d failed", c.Name, c.Passes, c.Fails)
		}
	}
	for _, t := range sum.Thresholds {
		rep.Enforce(t.Name, t.Passed)
		if !t.Passed {
			rep.AddFinding(report.Finding{
				Kind:     report.KindPerformance,
				Title:    fmt.Sprintf("Threshold crossed: %s", t.Name),
				Expected: t.Name,
				Actual:   fmt.Sprintf("%g", t.Value),
				Details: []string{
					fmt.Sprintf("p(95)=%s", sum.P95),
					fmt.Sprintf("failure rate=%.4f", sum.FailureRate),
				},
				Recommendations: []string{"Compare with the API provider's published limits before raising a defect"},
			})
		}
	}
	if sum.Requests > 0 && sum.Failures == sum.Requests {
		rep.AddFinding(report.Finding{
			Kind:            report.KindAvailability,
			Title:           "Every load request failed",
			Expected:        "HTTP 2xx/3xx responses",
			Actual:          fmt.Sprintf("%d of %d requests failed", sum.Failures, sum.Requests),
			Recommendations: []string{rerunAdvice(sum)},
		})
	}
	return nil
}

func rerunAdvice(sum *load.Summary) string {
	if sum.Retryable == sum.Failures {
		return "Every failure was transient; rerun the scenario before raising a defect"
	}
	return fmt.Sprintf("%d failures will not clear on a rerun; check the request paths against the API", sum.Failures-sum.Retryable)
}
