// Package load drives the countries API with concurrent virtual users and
// summarises latency, failures and checks against thresholds.
package load

import (
	"errors"
	"fmt"
	"time"
)

// Request is one HTTP GET issued per iteration. Path is relative to the
// harness base URL.
type Request struct {
	Name string
	Path string
}

// Check is evaluated against every sample. When PerRequest is set, Name is a
// format string receiving the request's index in the batch.
type Check struct {
	Name       string
	PerRequest bool
	Pass       func(Sample) bool
}

func (c Check) label(index int) string {
	if c.PerRequest {
		return fmt.Sprintf(c.Name, index)
	}
	return c.Name
}

// Scenario is the batch each iteration sends and the checks applied to it.
type Scenario struct {
	Name     string
	Requests []Request
	Checks   []Check
}

// Stage ramps the active user count linearly to Target over Duration.
type Stage struct {
	Duration time.Duration
	Target   int
}

// Options select fixed or staged execution. Stages take precedence over VUs.
// In fixed mode Iterations, when positive, caps the total iteration count
// shared by all users; otherwise Duration bounds the run.
type Options struct {
	VUs        int
	Duration   time.Duration
	Iterations int
	Stages     []Stage
	Thresholds []Threshold
}

// Staged reports whether the options ramp users through stages.
func (o Options) Staged() bool {
	return len(o.Stages) > 0
}

// TotalDuration is the wall-clock budget of the run.
func (o Options) TotalDuration() time.Duration {
	if !o.Staged() {
		return o.Duration
	}
	var total time.Duration
	for _, s := range o.Stages {
		total += s.Duration
	}
	return total
}

// MaxVUs is the largest number of users active at once.
func (o Options) MaxVUs() int {
	if !o.Staged() {
		return o.VUs
	}
	peak := 0
	for _, s := range o.Stages {
		peak = max(peak, s.Target)
	}
	return peak
}

// Validate rejects option sets that would never issue a request.
func (o Options) Validate() error {
	var errs []error
	if o.Staged() {
		for i, s := range o.Stages {
			if s.Duration <= 0 {
				errs = append(errs, fmt.Errorf("stage %d: duration must be positive", i))
			}
			if s.Target < 0 {
				errs = append(errs, fmt.Errorf("stage %d: target must not be negative", i))
			}
		}
		if o.MaxVUs() == 0 {
			errs = append(errs, errors.New("stages never reach a positive target"))
		}
		return errors.Join(errs...)
	}
	if o.VUs <= 0 {
		errs = append(errs, errors.New("vus must be positive"))
	}
	if o.Duration <= 0 && o.Iterations <= 0 {
		errs = append(errs, errors.New("either duration or iterations must be positive"))
	}
	return errors.Join(errs...)
}

// targetAt returns the interpolated user target at elapsed time. The ramp of
// the first stage starts from zero.
func (o Options) targetAt(elapsed time.Duration) int {
	if !o.Staged() {
		return o.VUs
	}
	from := 0
	for _, s := range o.Stages {
		if elapsed < s.Duration {
			frac := float64(elapsed) / float64(s.Duration)
			return from + int(float64(s.Target-from)*frac+0.5)
		}
		elapsed -= s.Duration
		from = s.Target
	}
	return from
}
