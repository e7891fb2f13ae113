// Package report holds the outcome of one suite run: the checks it evaluated,
// the findings it raised and the notes it logged along the way.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"atlasqa/pkg/requestcontext"
)

// Mode says whether a failed check fails the run.
type Mode string

const (
	// ModeDocument records the outcome without gating the run.
	ModeDocument Mode = "document"
	// ModeEnforce fails the run when the check fails.
	ModeEnforce Mode = "enforce"
)

// Check is a single evaluated assertion.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Mode   Mode   `json:"mode"`
}

// FindingKind classifies a finding.
type FindingKind string

const (
	KindRequirementsDefect FindingKind = "requirements-defect"
	KindDataGap            FindingKind = "data-gap"
	KindSchemaViolation    FindingKind = "schema-violation"
	KindAvailability       FindingKind = "availability"
	KindPerformance        FindingKind = "performance"
)

// Finding is something a reader of the report needs to act on.
type Finding struct {
	Kind            FindingKind `json:"kind"`
	Title           string      `json:"title"`
	Expected        string      `json:"expected,omitempty"`
	Actual          string      `json:"actual,omitempty"`
	Details         []string    `json:"details,omitempty"`
	Recommendations []string    `json:"recommendations,omitempty"`
}

// Report is the result of one suite run.
type Report struct {
	RunID      uuid.UUID `json:"run_id"`
	Suite      string    `json:"suite"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Strict     bool      `json:"strict"`
	Checks     []Check   `json:"checks"`
	Findings   []Finding `json:"findings"`
	Notes      []string  `json:"notes,omitempty"`
	// Fixture marks reports built from injected demo data rather than a live
	// source.
	Fixture bool `json:"fixture"`
}

// New starts a report for suite. The run ID comes from ctx when present so
// every suite of one `run all` shares it. In strict mode gating checks are
// enforced.
func New(ctx context.Context, suite string, strict bool) *Report {
	_, runID := requestcontext.EnsureRunID(ctx)
	return &Report{
		RunID:     runID,
		Suite:     suite,
		StartedAt: requestcontext.Now(ctx),
		Strict:    strict,
		Checks:    []Check{},
		Findings:  []Finding{},
	}
}

// Document records a check that never fails the run.
func (r *Report) Document(name string, passed bool) {
	r.Checks = append(r.Checks, Check{Name: name, Passed: passed, Mode: ModeDocument})
}

// Gate records a gating check: enforced in strict mode, documented otherwise.
func (r *Report) Gate(name string, passed bool) {
	mode := ModeDocument
	if r.Strict {
		mode = ModeEnforce
	}
	r.Checks = append(r.Checks, Check{Name: name, Passed: passed, Mode: mode})
}

// Enforce records a check that always fails the run when it fails.
func (r *Report) Enforce(name string, passed bool) {
	r.Checks = append(r.Checks, Check{Name: name, Passed: passed, Mode: ModeEnforce})
}

// AddFinding appends a finding.
func (r *Report) AddFinding(f Finding) {
	r.Findings = append(r.Findings, f)
}

// Notef appends a formatted note.
func (r *Report) Notef(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// Finish stamps the end time.
func (r *Report) Finish(ctx context.Context) {
	r.FinishedAt = requestcontext.Now(ctx)
}

// Duration is the wall time between start and finish.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Failed reports whether an enforced check failed. Documented failures never
// fail a run.
func (r *Report) Failed() bool {
	for _, c := range r.Checks {
		if c.Mode == ModeEnforce && !c.Passed {
			return true
		}
	}
	return false
}

// Counts returns the number of passed and failed checks.
func (r *Report) Counts() (passed, failed int) {
	for _, c := range r.Checks {
		if c.Passed {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// Status is a one-word summary for tables and logs.
func (r *Report) Status() string {
	switch {
	case r.Failed():
		return "FAIL"
	case len(r.Findings) > 0:
		return "PASS (findings)"
	default:
		return "PASS"
	}
}
