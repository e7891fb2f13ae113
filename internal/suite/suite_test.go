package suite

//go:generate mockgen -source=suite.go -destination=mocks/mocks.go -package=mocks Fetcher,LoadRunner,PageOpener,Recorder

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"atlasqa/internal/browser"
	"atlasqa/internal/browser/browsertest"
	"atlasqa/internal/countries/languages"
	"atlasqa/internal/countries/models"
	"atlasqa/internal/load"
	"atlasqa/internal/report"
	"atlasqa/internal/sport"
	"atlasqa/internal/suite/mocks"
	"atlasqa/pkg/platform/sentinel"
	"atlasqa/pkg/requestcontext"
	"atlasqa/pkg/testutil"
)

// =============================================================================
// Runner Test Suite
// =============================================================================
// The runner turns collaborator output into checks and findings. Collaborators
// are mocked so each suite's reporting rules can be pinned down.

type RunnerSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	fetcher  *mocks.MockFetcher
	loader   *mocks.MockLoadRunner
	pages    *mocks.MockPageOpener
	recorder *mocks.MockRecorder
	ctx      context.Context
}

func TestRunnerSuite(t *testing.T) {
	suite.Run(t, new(RunnerSuite))
}

func (s *RunnerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.fetcher = mocks.NewMockFetcher(s.ctrl)
	s.loader = mocks.NewMockLoadRunner(s.ctrl)
	s.pages = mocks.NewMockPageOpener(s.ctrl)
	s.recorder = mocks.NewMockRecorder(s.ctrl)
	s.ctx = context.Background()
}

func (s *RunnerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RunnerSuite) runner(opts ...Option) *Runner {
	base := []Option{
		WithRecorder(s.recorder),
		WithLoadRunner(s.loader),
		WithPageOpener(s.pages),
		WithSportOptions(sport.WithSettle(0, 0), sport.WithScreenshotDir(s.T().TempDir())),
	}
	return New(s.fetcher, append(base, opts...)...)
}

func (s *RunnerSuite) expectRecorded() {
	s.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(0)
}

func findCheck(rep *report.Report, name string) (report.Check, bool) {
	for _, c := range rep.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return report.Check{}, false
}

func kinds(rep *report.Report) []report.FindingKind {
	out := []report.FindingKind{}
	for _, f := range rep.Findings {
		out = append(out, f.Kind)
	}
	return out
}

func (s *RunnerSuite) requireCheck(rep *report.Report, name string, passed bool, mode report.Mode) {
	c, ok := findCheck(rep, name)
	s.Require().True(ok, "missing check %q", name)
	s.Equal(passed, c.Passed, "check %q", name)
	s.Equal(mode, c.Mode, "check %q", name)
}

// =============================================================================
// Run dispatch
// =============================================================================

func (s *RunnerSuite) TestRunUnknownSuite() {
	_, err := s.runner().Run(s.ctx, "smoke")
	s.ErrorIs(err, sentinel.ErrInvalidInput)
}

func (s *RunnerSuite) TestRunKeepsCallerRunID() {
	runID := uuid.New()
	ctx := requestcontext.WithRunID(s.ctx, runID)
	s.fetcher.EXPECT().FetchAll(gomock.Any(), models.DefaultFields).
		DoAndReturn(func(ctx context.Context, _ []string) []models.Country {
			s.Equal(Schema, requestcontext.Suite(ctx))
			return testutil.SampleCountries()
		})
	s.expectRecorded()

	rep, err := s.runner().Run(ctx, Schema)
	s.Require().NoError(err)
	s.Equal(runID, rep.RunID)
	s.False(rep.FinishedAt.IsZero())
}

func (s *RunnerSuite) TestSinkFailuresDoNotChangeTheReport() {
	s.fetcher.EXPECT().FetchAll(gomock.Any(), gomock.Any()).Return(testutil.SampleCountries())
	s.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(2)

	rep, err := s.runner().Run(s.ctx, Schema)
	s.Require().NoError(err)
	s.Equal("PASS", rep.Status())
}

func (s *RunnerSuite) TestRunAllSharesOneRunID() {
	s.fetcher.EXPECT().FetchAll(gomock.Any(), gomock.Any()).Return(testutil.SampleCountries()).Times(3)
	s.fetcher.EXPECT().FetchByCode(gomock.Any(), languages.SouthAfricaCode).
		Return(testutil.SampleCountries()[0], true).Times(2)
	s.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(0).Times(len(APISuites))

	reports, err := s.runner().RunAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(reports, len(APISuites))
	for i, rep := range reports {
		s.Equal(APISuites[i], rep.Suite)
		s.Equal(reports[0].RunID, rep.RunID)
	}
}

// =============================================================================
// Schema suite
// =============================================================================

func (s *RunnerSuite) TestSchemaSuite() {
	s.Run("well-formed data passes with no findings", func() {
		s.fetcher.EXPECT().FetchAll(gomock.Any(), models.DefaultFields).Return(testutil.SampleCountries())
		s.expectRecorded()

		rep, err := s.runner().Run(s.ctx, Schema)
		s.Require().NoError(err)
		s.requireCheck(rep, checkNonEmpty, true, report.ModeDocument)
		s.requireCheck(rep, checkAllValid, true, report.ModeDocument)
		s.Empty(rep.Findings)
		s.Contains(rep.Notes, "Valid countries: 7/7")
	})

	s.Run("invalid record raises a schema finding", func() {
		testland := models.Country{
			Name:   &models.Name{Common: "Testland"},
			CCA3:   "TST",
			Region: models.RegionEurope,
			Status: models.StatusOfficiallyAssigned,
		}
		s.fetcher.EXPECT().FetchAll(gomock.Any(), gomock.Any()).
			Return(append(testutil.SampleCountries(), testland))
		s.expectRecorded()

		rep, err := s.runner().Run(s.ctx, Schema)
		s.Require().NoError(err)
		s.requireCheck(rep, checkAllValid, false, report.ModeDocument)
		s.False(rep.Failed())
		s.Require().Len(rep.Findings, 1)
		s.Equal(report.KindSchemaViolation, rep.Findings[0].Kind)
		s.Equal([]string{"Testland: Missing official name"}, rep.Findings[0].Details)
	})

	s.Run("strict mode fails the run on invalid data", func() {
		s.fetcher.EXPECT().FetchAll(gomock.Any(), gomock.Any()).
			Return([]models.Country{{CCA3: "TST", Region: "Mars", Status: "royal"}})
		s.expectRecorded()

		rep, err := s.runner(WithStrict(true)).Run(s.ctx, Schema)
		s.Require().NoError(err)
		s.requireCheck(rep, checkAllValid, false, report.ModeEnforce)
		s.True(rep.Failed())
		s.Equal([]string{"Country-0: Missing name object, Invalid region: Mars, Invalid status: royal"}, rep.Findings[0].Details)
	})

	s.Run("empty response is an availability finding", func() {
		s.fetcher.EXPECT().FetchAll(gomock.Any(), gomock.Any()).Return([]models.Country{})
		s.expectRecorded()

		rep, err := s.runner().Run(s.ctx, Schema)
		s.Require().NoError(err)
		s.requireCheck(rep, checkNonEmpty, false, report.ModeDocument)
		s.Equal([]report.FindingKind{report.KindAvailability}, kinds(rep))
		s.False(rep.Failed())
	})
}

// =============================================================================
// Count suite
// =============================================================================

func (s *RunnerSuite) TestCountSuite() {
	s.Run("always documents the counting ambiguity", func() {
		s.fetcher.EXPECT().FetchAll(gomock.Any(), gomock.Any()).Return(testutil.SampleCountries())
		s.expectRecorded()

		rep, err := s.runner().Run(s.ctx, Count)
		s.Require().NoError(err)
		s.requireCheck(rep, checkReasonableEntries, false, report.ModeDocument)
		s.requireCheck(rep, "officially assigned count is close to 195", false, report.ModeDocument)
		s.requireCheck(rep, checkAnalysisDone, true, report.ModeDocument)
		s.False(rep.Failed())

		s.Require().Equal([]report.FindingKind{report.KindRequirementsDefect}, kinds(rep))
		f := rep.Findings[0]
		s.Equal("Confirm 195 countries in the world", f.Expected)
		s.Contains(f.Details, "UN Member States + Observers: 195")
		s.Contains(f.Recommendations, `Option C: "6 officially assigned countries"`)
		s.Contains(rep.Notes, "By region: Africa=1, Americas=1, Antarctic=1, Asia=1, Europe=2, Oceania=1")
	})

	s.Run("expected count is configurable", func() {
		s.fetcher.EXPECT().FetchAll(gomock.Any(), gomock.Any()).Return(testutil.SampleCountries())
		s.expectRecorded()

		rep, err := s.runner(WithExpectedCountries(6), WithStrict(true)).Run(s.ctx, Count)
		s.Require().NoError(err)
		s.requireCheck(rep, "officially assigned count is close to 6", true, report.ModeEnforce)
		s.True(rep.Failed(), "seven entries is outside the reasonable range")
	})

	s.Run("no data still documents the standards", func() {
		s.fetcher.EXPECT().FetchAll(gomock.Any(), gomock.Any()).Return([]models.Country{})
		s.expectRecorded()

		rep, err := s.runner(WithStrict(true)).Run(s.ctx, Count)
		s.Require().NoError(err)
		s.requireCheck(rep, checkAmbiguityNoData, true, report.ModeDocument)
		s.Equal([]report.FindingKind{report.KindAvailability, report.KindRequirementsDefect}, kinds(rep))
		s.False(rep.Failed())
	})
}

// =============================================================================
// Language and e2e suites
// =============================================================================

func southAfricaWithSASL() models.Country {
	zaf := testutil.SampleCountries()[0]
	langs := map[string]string{"sfs": "South African Sign Language"}
	for k, v := range zaf.Languages {
		langs[k] = v
	}
	zaf.Languages = langs
	return zaf
}

func (s *RunnerSuite) TestLanguagesSuite() {
	s.Run("pre-amendment data is a documented data gap", func() {
		s.fetcher.EXPECT().FetchByCode(gomock.Any(), "ZAF").Return(testutil.SampleCountries()[0], true)
		s.expectRecorded()

		rep, err := s.runner().Run(s.ctx, Languages)
		s.Require().NoError(err)
		s.requireCheck(rep, checkSASLGap, true, report.ModeDocument)
		s.Require().Equal([]report.FindingKind{report.KindDataGap}, kinds(rep))
		s.Equal("11 languages listed, SASL missing", rep.Findings[0].Actual)
		s.Len(rep.Findings[0].Details, 11)
		s.Contains(rep.Notes, "Language count assessment: pre-sasl")
	})

	s.Run("SASL present passes without findings", func() {
		s.fetcher.EXPECT().FetchByCode(gomock.Any(), "ZAF").Return(southAfricaWithSASL(), true)
		s.expectRecorded()

		rep, err := s.runner(WithStrict(true)).Run(s.ctx, Languages)
		s.Require().NoError(err)
		s.requireCheck(rep, checkSASLPresent, true, report.ModeEnforce)
		s.Empty(rep.Findings)
		s.Equal("PASS", rep.Status())
	})

	s.Run("unavailable record documents the gap anyway", func() {
		s.fetcher.EXPECT().FetchByCode(gomock.Any(), "ZAF").Return(models.Country{}, false)
		s.expectRecorded()

		rep, err := s.runner().Run(s.ctx, Languages)
		s.Require().NoError(err)
		s.requireCheck(rep, checkSASLGapNoData, true, report.ModeDocument)
		s.Equal([]report.FindingKind{report.KindAvailability, report.KindDataGap}, kinds(rep))
	})
}

func (s *RunnerSuite) TestE2ESuite() {
	s.fetcher.EXPECT().FetchAll(gomock.Any(), gomock.Any()).Return(testutil.SampleCountries())
	s.fetcher.EXPECT().FetchByCode(gomock.Any(), "ZAF").Return(testutil.SampleCountries()[0], true)
	s.expectRecorded()

	rep, err := s.runner().Run(s.ctx, E2E)
	s.Require().NoError(err)
	s.requireCheck(rep, checkStability, true, report.ModeDocument)
	s.requireCheck(rep, checkDefectProposed, true, report.ModeDocument)
	s.requireCheck(rep, checkSASLGap, true, report.ModeDocument)
	s.Equal([]report.FindingKind{report.KindRequirementsDefect, report.KindDataGap}, kinds(rep))
	s.Contains(rep.Notes, "Count ambiguity documented (API: 6 vs Expected: 195)")
}

// =============================================================================
// Load suites
// =============================================================================

func (s *RunnerSuite) TestLoadSuite() {
	s.Run("overrides reach the harness and checks are documented", func() {
		s.loader.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, sc load.Scenario, opts load.Options) (*load.Summary, error) {
				s.Equal("load", sc.Name)
				s.Equal(3, opts.VUs)
				s.Equal(5*time.Second, opts.Duration)
				return &load.Summary{
					Scenario: sc.Name, Iterations: 2, Requests: 6, Failures: 1, FailureRate: 1.0 / 6,
					Checks: []load.CheckCount{
						{Name: "request 0 status 200", Passes: 2},
						{Name: "request 1 status 200", Passes: 1, Fails: 1},
					},
				}, nil
			})
		s.expectRecorded()

		rep, err := s.runner(WithLoadOverrides(3, 5*time.Second)).Run(s.ctx, Load)
		s.Require().NoError(err)
		s.requireCheck(rep, "request 0 status 200", true, report.ModeDocument)
		s.requireCheck(rep, "request 1 status 200", false, report.ModeDocument)
		s.False(rep.Failed())
		s.Empty(rep.Findings)
	})

	s.Run("crossed thresholds fail the run", func() {
		s.loader.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, sc load.Scenario, opts load.Options) (*load.Summary, error) {
				s.True(opts.Staged())
				return &load.Summary{
					Scenario: sc.Name, Requests: 10, Failures: 10, Retryable: 9, FailureRate: 1, P95: 3 * time.Second,
					Thresholds: []load.ThresholdResult{
						{Name: "http_req_duration p(95)<2000", Value: 3000},
						{Name: "http_req_failed rate<0.01", Value: 1},
					},
				}, nil
			})
		s.expectRecorded()

		rep, err := s.runner().Run(s.ctx, Perf)
		s.Require().NoError(err)
		s.requireCheck(rep, "http_req_duration p(95)<2000", false, report.ModeEnforce)
		s.True(rep.Failed())
		s.Equal([]report.FindingKind{report.KindPerformance, report.KindPerformance, report.KindAvailability}, kinds(rep))
		s.Equal([]string{"1 failures will not clear on a rerun; check the request paths against the API"}, rep.Findings[2].Recommendations)
	})

	s.Run("transient failures recommend a rerun", func() {
		s.loader.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&load.Summary{Scenario: "load", Requests: 4, Failures: 4, Retryable: 4, FailureRate: 1}, nil)
		s.expectRecorded()

		rep, err := s.runner().Run(s.ctx, Load)
		s.Require().NoError(err)
		s.Contains(rep.Notes, "http_req_failed 100.00% (4/4, 4 retryable)")
		s.Require().Equal([]report.FindingKind{report.KindAvailability}, kinds(rep))
		s.Equal([]string{"Every failure was transient; rerun the scenario before raising a defect"}, rep.Findings[0].Recommendations)
	})

	s.Run("harness errors abort the suite", func() {
		s.loader.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("invalid options"))

		_, err := s.runner().Run(s.ctx, Load)
		s.ErrorContains(err, "invalid options")
	})

	s.Run("missing harness is unavailable", func() {
		_, err := New(s.fetcher).Run(s.ctx, Perf)
		s.ErrorIs(err, sentinel.ErrUnavailable)
	})
}

// =============================================================================
// Browser suites
// =============================================================================

func (s *RunnerSuite) expectPage(page *browsertest.Page) *int {
	closed := new(int)
	s.pages.EXPECT().OpenPage(gomock.Any()).
		Return(browser.Page(page), func() error { *closed++; return nil }, nil)
	return closed
}

func (s *RunnerSuite) TestSearchSuite() {
	s.Run("verified live results pass", func() {
		page := browsertest.NewPage("xpath=" + sport.SearchInputXPath)
		page.Body = "BBC Sport search\n" + titles(sport.DemoSearchResults())
		closed := s.expectPage(page)
		s.expectRecorded()

		rep, err := s.runner().Run(s.ctx, Search)
		s.Require().NoError(err)
		s.Equal(1, *closed)
		s.False(rep.Fixture)
		s.requireCheck(rep, checkMinResults(4), true, report.ModeDocument)
		s.requireCheck(rep, checkRelevant(4), true, report.ModeDocument)
		s.requireCheck(rep, checkRelevanceRate, true, report.ModeDocument)
		s.Equal([]string{sport.HomepageURL}, page.Visited)
		s.Equal(SearchTerm, page.Filled["xpath="+sport.SearchInputXPath])
	})

	s.Run("a page that only mentions sport is not reported as results", func() {
		page := browsertest.NewPage("xpath=" + sport.SearchInputXPath)
		page.Body = "Sport"
		s.expectPage(page)
		s.expectRecorded()

		rep, err := s.runner(WithStrict(true)).Run(s.ctx, Search)
		s.Require().NoError(err)
		s.False(rep.Fixture)
		s.requireCheck(rep, checkMinResults(4), false, report.ModeEnforce)
		s.Equal([]report.FindingKind{report.KindAvailability}, kinds(rep))
		for _, note := range rep.Notes {
			for _, res := range sport.DemoSearchResults() {
				s.NotContains(note, res.Title)
			}
		}
		s.True(rep.Failed())
	})

	s.Run("a page that only mentions sport falls back to flagged fixtures", func() {
		page := browsertest.NewPage("xpath=" + sport.SearchInputXPath)
		page.Body = "Sport"
		s.expectPage(page)
		s.expectRecorded()

		rep, err := s.runner(WithFixtures(true)).Run(s.ctx, Search)
		s.Require().NoError(err)
		s.True(rep.Fixture)
		s.Contains(rep.Notes, "No verified search results; using demo fixtures")
	})

	s.Run("failed search without fixtures is an availability finding", func() {
		s.expectPage(browsertest.NewPage())
		s.expectRecorded()

		rep, err := s.runner(WithStrict(true)).Run(s.ctx, Search)
		s.Require().NoError(err)
		s.requireCheck(rep, checkMinResults(4), false, report.ModeEnforce)
		s.Equal([]report.FindingKind{report.KindAvailability}, kinds(rep))
		s.True(rep.Failed())
	})

	s.Run("failed search with fixtures is flagged", func() {
		s.expectPage(browsertest.NewPage())
		s.expectRecorded()

		rep, err := s.runner(WithFixtures(true)).Run(s.ctx, Search)
		s.Require().NoError(err)
		s.True(rep.Fixture)
		s.requireCheck(rep, checkRelevant(4), true, report.ModeDocument)
	})

	s.Run("browser launch failure aborts", func() {
		s.pages.EXPECT().OpenPage(gomock.Any()).Return(nil, nil, errors.New("no chromium"))

		_, err := s.runner().Run(s.ctx, Search)
		s.ErrorContains(err, "no chromium")
		s.ErrorIs(err, sentinel.ErrUnavailable)
	})
}

func (s *RunnerSuite) TestRaceSuite() {
	s.Run("fixtures expose the 2nd place requirements defect", func() {
		s.expectPage(browsertest.NewPage("xpath=" + sport.SearchInputXPath))
		s.expectRecorded()

		rep, err := s.runner(WithFixtures(true)).Run(s.ctx, Race)
		s.Require().NoError(err)
		s.True(rep.Fixture)
		s.requireCheck(rep, checkTopThree, true, report.ModeDocument)
		s.requireCheck(rep, checkSecondPlace, true, report.ModeDocument)
		s.Require().Equal([]report.FindingKind{report.KindRequirementsDefect}, kinds(rep))
		s.Equal("George Russell in position 2", rep.Findings[0].Expected)
		s.Equal("Charles Leclerc in position 2", rep.Findings[0].Actual)
		s.Contains(rep.Notes, "Position 2: expected George Russell (Mercedes), actual Charles Leclerc (Ferrari): driver mismatch")
	})

	s.Run("without fixtures the results are a data gap", func() {
		s.expectPage(browsertest.NewPage())
		s.expectRecorded()

		rep, err := s.runner().Run(s.ctx, Race)
		s.Require().NoError(err)
		s.False(rep.Fixture)
		s.requireCheck(rep, checkTopThree, false, report.ModeDocument)
		_, reported := findCheck(rep, checkSecondPlace)
		s.False(reported)
		s.Equal([]report.FindingKind{report.KindDataGap}, kinds(rep))
	})
}

func TestNames(t *testing.T) {
	testutil.Given(t, "the suite registry", func(t *testing.T) {
		r := New(nil)
		testutil.Then(t, "every listed name dispatches", func(t *testing.T) {
			for _, name := range Names() {
				if _, ok := r.suites()[name]; !ok {
					t.Fatalf("suite %q is not registered", name)
				}
			}
		})
		testutil.And(t, "run all covers only API suites", func(t *testing.T) {
			for _, name := range APISuites {
				if !slices.Contains(Names(), name) {
					t.Fatalf("API suite %q is not listed", name)
				}
			}
		})
	})
}

func titles(results []sport.SearchResult) string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Title)
	}
	return strings.Join(out, "\n")
}
