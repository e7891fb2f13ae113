package common

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"atlasqa/internal/report"
	"atlasqa/pkg/platform/sentinel"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	SetStrict(strict bool)
	RunSuite(ctx context.Context, name string) error
	Report() *report.Report
	RunErr() error
	Stored(ctx context.Context, suite string) (*report.Report, error)
}

// RegisterSteps registers suite-run and report assertion steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	// Setup and action steps
	ctx.Step(`^strict mode is (enabled|disabled)$`, steps.strictMode)
	ctx.Step(`^I run the "([^"]*)" suite$`, steps.runSuite)

	// Report assertion steps
	ctx.Step(`^the run should (pass|fail)$`, steps.runOutcome)
	ctx.Step(`^the run should be rejected as invalid input$`, steps.rejectedAsInvalid)
	ctx.Step(`^the run should be reported as unavailable$`, steps.reportedUnavailable)
	ctx.Step(`^the check "([^"]*)" should (pass|fail)$`, steps.checkOutcome)
	ctx.Step(`^the check "([^"]*)" should be (enforced|documented)$`, steps.checkMode)
	ctx.Step(`^the report should have a "([^"]*)" finding$`, steps.hasFindingKind)
	ctx.Step(`^the report should have a finding titled "([^"]*)"$`, steps.hasFindingTitle)
	ctx.Step(`^the report should have no "([^"]*)" finding$`, steps.noFindingKind)
	ctx.Step(`^the report should note "([^"]*)"$`, steps.hasNote)
	ctx.Step(`^the report should be marked as fixture data$`, steps.markedFixture)
	ctx.Step(`^the report should be stored as the latest "([^"]*)" report$`, steps.storedLatest)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) strictMode(ctx context.Context, state string) error {
	s.tc.SetStrict(state == "enabled")
	return nil
}

func (s *commonSteps) runSuite(ctx context.Context, name string) error {
	return s.tc.RunSuite(ctx, name)
}

func (s *commonSteps) completed() (*report.Report, error) {
	if err := s.tc.RunErr(); err != nil {
		return nil, fmt.Errorf("suite run returned an error: %w", err)
	}
	if s.tc.Report() == nil {
		return nil, errors.New("no suite has run")
	}
	return s.tc.Report(), nil
}

func (s *commonSteps) runOutcome(ctx context.Context, outcome string) error {
	r, err := s.completed()
	if err != nil {
		return err
	}
	if want := outcome == "fail"; r.Failed() != want {
		return fmt.Errorf("expected run to %s, status is %s", outcome, r.Status())
	}
	return nil
}

func (s *commonSteps) rejectedAsInvalid(ctx context.Context) error {
	if !errors.Is(s.tc.RunErr(), sentinel.ErrInvalidInput) {
		return fmt.Errorf("expected invalid input error, got %v", s.tc.RunErr())
	}
	return nil
}

func (s *commonSteps) reportedUnavailable(ctx context.Context) error {
	if !errors.Is(s.tc.RunErr(), sentinel.ErrUnavailable) {
		return fmt.Errorf("expected unavailable error, got %v", s.tc.RunErr())
	}
	return nil
}

func (s *commonSteps) findCheck(name string) (report.Check, error) {
	r, err := s.completed()
	if err != nil {
		return report.Check{}, err
	}
	for _, c := range r.Checks {
		if c.Name == name {
			return c, nil
		}
	}
	names := make([]string, 0, len(r.Checks))
	for _, c := range r.Checks {
		names = append(names, c.Name)
	}
	return report.Check{}, fmt.Errorf("check %q not found in [%s]", name, strings.Join(names, "; "))
}

func (s *commonSteps) checkOutcome(ctx context.Context, name, outcome string) error {
	c, err := s.findCheck(name)
	if err != nil {
		return err
	}
	if want := outcome == "pass"; c.Passed != want {
		return fmt.Errorf("expected check %q to %s", name, outcome)
	}
	return nil
}

func (s *commonSteps) checkMode(ctx context.Context, name, mode string) error {
	c, err := s.findCheck(name)
	if err != nil {
		return err
	}
	want := report.ModeDocument
	if mode == "enforced" {
		want = report.ModeEnforce
	}
	if c.Mode != want {
		return fmt.Errorf("expected check %q in mode %s, got %s", name, want, c.Mode)
	}
	return nil
}

func (s *commonSteps) hasFindingKind(ctx context.Context, kind string) error {
	r, err := s.completed()
	if err != nil {
		return err
	}
	for _, f := range r.Findings {
		if string(f.Kind) == kind {
			return nil
		}
	}
	return fmt.Errorf("no %s finding among %d findings", kind, len(r.Findings))
}

func (s *commonSteps) noFindingKind(ctx context.Context, kind string) error {
	if err := s.hasFindingKind(ctx, kind); err == nil {
		return fmt.Errorf("unexpected %s finding", kind)
	}
	return nil
}

func (s *commonSteps) hasFindingTitle(ctx context.Context, title string) error {
	r, err := s.completed()
	if err != nil {
		return err
	}
	for _, f := range r.Findings {
		if f.Title == title {
			return nil
		}
	}
	return fmt.Errorf("no finding titled %q", title)
}

func (s *commonSteps) hasNote(ctx context.Context, note string) error {
	r, err := s.completed()
	if err != nil {
		return err
	}
	for _, n := range r.Notes {
		if strings.Contains(n, note) {
			return nil
		}
	}
	return fmt.Errorf("no note containing %q in %q", note, r.Notes)
}

func (s *commonSteps) markedFixture(ctx context.Context) error {
	r, err := s.completed()
	if err != nil {
		return err
	}
	if !r.Fixture {
		return errors.New("expected report to be marked as fixture data")
	}
	return nil
}

func (s *commonSteps) storedLatest(ctx context.Context, suite string) error {
	r, err := s.completed()
	if err != nil {
		return err
	}
	stored, err := s.tc.Stored(ctx, suite)
	if err != nil {
		return err
	}
	if stored.RunID != r.RunID {
		return fmt.Errorf("latest stored %s report is run %s, want %s", suite, stored.RunID, r.RunID)
	}
	return nil
}
