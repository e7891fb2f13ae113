// Package e2e runs the feature files against the suite runner wired to an
// in-process countries API and a scripted browser page.
package e2e

import (
	"context"
	"errors"
	"net/http"
	"time"

	"atlasqa/internal/browser/browsertest"
	"atlasqa/internal/countries/client"
	"atlasqa/internal/countries/models"
	"atlasqa/internal/report"
	"atlasqa/internal/report/store/memory"
	"atlasqa/internal/sport"
	"atlasqa/internal/suite"
	"atlasqa/pkg/testutil"
)

// TestContext is the state one scenario builds up.
type TestContext struct {
	api     *testutil.CountriesAPI
	store   *memory.InMemoryStore
	opener  *browsertest.Opener
	strict  bool
	fixture bool
	expect  int

	report *report.Report
	runErr error
}

// NewTestContext wraps a countries API shared by every scenario.
func NewTestContext(api *testutil.CountriesAPI) *TestContext {
	tc := &TestContext{api: api}
	tc.Reset()
	return tc
}

// Reset returns to the sample data set with a working browser and no run.
func (tc *TestContext) Reset() {
	tc.api.SetRecords(testutil.SampleCountries())
	tc.store = memory.NewInMemoryStore()
	tc.opener = &browsertest.Opener{Page: browsertest.NewPage()}
	tc.strict = false
	tc.fixture = false
	tc.expect = 0
	tc.report = nil
	tc.runErr = nil
}

func (tc *TestContext) ServeCountries(records []models.Country) {
	tc.api.SetRecords(records)
}

func (tc *TestContext) ServeSampleCountries() {
	tc.api.SetRecords(testutil.SampleCountries())
}

func (tc *TestContext) FailAPI() {
	tc.api.FailWith(http.StatusInternalServerError, `{"message":"internal error"}`)
}

func (tc *TestContext) SetStrict(strict bool) {
	tc.strict = strict
}

func (tc *TestContext) SetFixtures(enabled bool) {
	tc.fixture = enabled
}

func (tc *TestContext) SetExpectedCountries(n int) {
	tc.expect = n
}

func (tc *TestContext) UsePage(page *browsertest.Page) {
	tc.opener = &browsertest.Opener{Page: page}
}

func (tc *TestContext) FailBrowserLaunch() {
	tc.opener = &browsertest.Opener{Err: errors.New("chromium: executable not found")}
}

// RunSuite runs name the way `atlasqa run` does and keeps the outcome.
func (tc *TestContext) RunSuite(ctx context.Context, name string) error {
	c := client.New(tc.api.URL(), client.WithHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	runner := suite.New(c,
		suite.WithRecorder(report.NewRecorder(report.WithStore(tc.store))),
		suite.WithStrict(tc.strict),
		suite.WithExpectedCountries(tc.expect),
		suite.WithFixtures(tc.fixture),
		suite.WithPageOpener(tc.opener),
		suite.WithSportOptions(sport.WithSettle(0, 0)),
	)
	tc.report, tc.runErr = runner.Run(ctx, name)
	return nil
}

func (tc *TestContext) Report() *report.Report {
	return tc.report
}

func (tc *TestContext) RunErr() error {
	return tc.runErr
}

// Stored returns the latest stored report for suite.
func (tc *TestContext) Stored(ctx context.Context, suiteName string) (*report.Report, error) {
	return tc.store.Latest(ctx, suiteName)
}
