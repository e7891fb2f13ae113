package load

import (
	"fmt"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"

	"atlasqa/internal/countries/client"
)

// Sample is the outcome of one request.
type Sample struct {
	Request  string
	Index    int
	Status   int
	Duration time.Duration
	Err      error
}

// Failed follows the usual load-testing convention: transport errors and
// statuses outside 2xx/3xx count as failures.
func (s Sample) Failed() bool {
	return s.Err != nil || s.Status < 200 || s.Status >= 400
}

// Retryable reports whether the failure is one a later run could clear:
// timeouts, transport failures, 5xx and rate limiting.
func (s Sample) Retryable() bool {
	if !s.Failed() {
		return false
	}
	return client.IsRetryable(client.Classify("load "+s.Request, s.Status, s.Err))
}

func (s Sample) statusClass() string {
	if s.Err != nil {
		return "error"
	}
	return fmt.Sprintf("%dxx", s.Status/100)
}

// CheckCount tallies one named check.
type CheckCount struct {
	Name   string `json:"name"`
	Passes int    `json:"passes"`
	Fails  int    `json:"fails"`
}

// ThresholdResult is one evaluated threshold.
type ThresholdResult struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Passed bool    `json:"passed"`
}

// Summary aggregates a finished run.
type Summary struct {
	Scenario    string            `json:"scenario"`
	Iterations  int               `json:"iterations"`
	Requests    int               `json:"requests"`
	Failures    int               `json:"failures"`
	Retryable   int               `json:"retryable_failures"`
	FailureRate float64           `json:"failure_rate"`
	P50         time.Duration     `json:"p50"`
	P95         time.Duration     `json:"p95"`
	Max         time.Duration     `json:"max"`
	Elapsed     time.Duration     `json:"elapsed"`
	Checks      []CheckCount      `json:"checks"`
	Thresholds  []ThresholdResult `json:"thresholds"`
}

// Passed reports whether every threshold held.
func (s *Summary) Passed() bool {
	for _, t := range s.Thresholds {
		if !t.Passed {
			return false
		}
	}
	return true
}

// Summarize folds samples into a Summary and evaluates the thresholds.
func Summarize(scenario Scenario, samples []Sample, iterations int, elapsed time.Duration, thresholds []Threshold) *Summary {
	sum := &Summary{
		Scenario:   scenario.Name,
		Iterations: iterations,
		Requests:   len(samples),
		Elapsed:    elapsed,
		Checks:     tallyChecks(scenario, samples),
	}

	durations := make([]float64, 0, len(samples))
	for _, s := range samples {
		if s.Failed() {
			sum.Failures++
			if s.Retryable() {
				sum.Retryable++
			}
		}
		durations = append(durations, float64(s.Duration))
	}
	if len(samples) > 0 {
		sum.FailureRate = float64(sum.Failures) / float64(len(samples))
		slices.Sort(durations)
		sum.P50 = time.Duration(stat.Quantile(0.50, stat.Empirical, durations, nil))
		sum.P95 = time.Duration(stat.Quantile(0.95, stat.Empirical, durations, nil))
		sum.Max = time.Duration(durations[len(durations)-1])
	}

	for _, t := range thresholds {
		value, ok := t.Eval(sum)
		sum.Thresholds = append(sum.Thresholds, ThresholdResult{Name: t.Name, Value: value, Passed: ok})
	}
	return sum
}

func tallyChecks(scenario Scenario, samples []Sample) []CheckCount {
	var order []string
	counts := make(map[string]*CheckCount)
	for _, s := range samples {
		for _, c := range scenario.Checks {
			name := c.label(s.Index)
			cc, ok := counts[name]
			if !ok {
				cc = &CheckCount{Name: name}
				counts[name] = cc
				order = append(order, name)
			}
			if c.Pass(s) {
				cc.Passes++
			} else {
				cc.Fails++
			}
		}
	}
	slices.Sort(order)
	out := make([]CheckCount, 0, len(order))
	for _, name := range order {
		out = append(out, *counts[name])
	}
	return out
}

// Threshold is a named pass/fail rule over a Summary.
type Threshold struct {
	Name string
	Eval func(*Summary) (float64, bool)
}

// P95Below holds when the 95th percentile duration is under limit.
func P95Below(limit time.Duration) Threshold {
	return Threshold{
		Name: fmt.Sprintf("http_req_duration p(95)<%d", limit.Milliseconds()),
		Eval: func(s *Summary) (float64, bool) {
			ms := float64(s.P95) / float64(time.Millisecond)
			return ms, s.P95 < limit
		},
	}
}

// FailureRateBelow holds when the failed request rate is under limit.
func FailureRateBelow(limit float64) Threshold {
	return Threshold{
		Name: fmt.Sprintf("http_req_failed rate<%g", limit),
		Eval: func(s *Summary) (float64, bool) {
			return s.FailureRate, s.FailureRate < limit
		},
	}
}
