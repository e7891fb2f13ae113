package suite

import (
	"context"
	"fmt"

	"atlasqa/internal/report"
	"atlasqa/internal/sport"
	"atlasqa/pkg/platform/sentinel"
)

const (
	// SearchTerm is what the search suite types into the site search.
	SearchTerm = "sport"
	// RaceSearchTerm locates the race the requirements describe.
	RaceSearchTerm = "Las Vegas Grand Prix 2023"
)

func checkMinResults(n int) string {
	return fmt.Sprintf("search returns at least %d results", n)
}

func checkRelevant(n int) string {
	return fmt.Sprintf("at least %d results contain relevant sport content", n)
}

const (
	checkRelevanceRate = "60% of results are sport related"
	checkTopThree      = "race results show the top 3 finishers"
	checkSecondPlace   = "requirements defect reported for 2nd place driver"
)

// withPage opens a page for the duration of fn.
func (r *Runner) withPage(ctx context.Context, fn func(*sport.Page) error) error {
	if r.pages == nil {
		return fmt.Errorf("browser not configured: %w", sentinel.ErrUnavailable)
	}
	page, release, err := r.pages.OpenPage(ctx)
	if err != nil {
		return fmt.Errorf("open browser page: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer func() {
		if err := release(); err != nil {
			r.logger.WarnContext(ctx, "failed to close browser", "error", err)
		}
	}()

	opts := append([]sport.Option{sport.WithLogger(r.logger)}, r.sportOpts...)
	return fn(sport.NewPage(page, opts...))
}

func (r *Runner) runSearch(ctx context.Context, rep *report.Report) error {
	return r.withPage(ctx, func(p *sport.Page) error {
		var results []sport.SearchResult
		if err := p.NavigateToHomepage(ctx); err != nil {
			rep.Notef("Homepage navigation failed: %v", err)
		} else {
			results = p.PerformSearch(ctx, SearchTerm, sport.DemoSearchResults())
		}

		if len(results) == 0 {
			if r.fixtures {
				results = sport.DemoSearchResults()
				rep.Fixture = true
				rep.Notef("No verified search results; using demo fixtures")
			} else {
				rep.AddFinding(report.Finding{
					Kind:     report.KindAvailability,
					Title:    "Search returned no verifiable results",
					Expected: fmt.Sprintf("at least %d results for %q", sport.MinimumRelevant, SearchTerm),
					Actual:   "0 results",
					Recommendations: []string{
						"Check the failure screenshot and the menu and search selectors",
					},
				})
			}
		}

		for i, res := range results {
			rep.Notef("%d. %s", i+1, res.Title)
		}
		rep.Gate(checkMinResults(sport.MinimumRelevant), len(results) >= sport.MinimumRelevant)

		a := sport.AnalyzeRelevance(results, nil)
		for _, rr := range a.Results {
			if !rr.Relevant() {
				rep.Notef("Non-relevant result: %q", rr.Title)
			}
		}
		rep.Notef("Relevance: %d/%d relevant (%.1f%%), threshold %d",
			a.Relevant, a.Total, a.Rate()*100, a.Threshold)
		rep.Gate(checkRelevant(sport.MinimumRelevant), a.MeetsMinimum())
		rep.Document(checkRelevanceRate, a.MeetsThreshold())
		return nil
	})
}

func (r *Runner) runRace(ctx context.Context, rep *report.Report) error {
	return r.withPage(ctx, func(p *sport.Page) error {
		if err := p.NavigateToFormula1(ctx); err != nil {
			rep.Notef("Formula 1 navigation failed: %v", err)
		} else if err := p.SearchFor(ctx, RaceSearchTerm); err != nil {
			rep.Notef("Race search failed: %v", err)
		}

		// the live results table has no stable selectors to read from
		var actual []sport.RaceResult
		if r.fixtures {
			actual = sport.DemoRaceResults()
			rep.Fixture = true
			rep.Notef("Race results taken from demo fixtures")
		} else {
			rep.AddFinding(report.Finding{
				Kind:     report.KindDataGap,
				Title:    "Race results could not be read from the page",
				Expected: "top 3 finishers of " + RaceSearchTerm,
				Actual:   "no results",
				Recommendations: []string{
					"Run with fixtures enabled to evaluate the requirements against the recorded results",
				},
			})
		}

		for _, res := range actual {
			rep.Notef("%d. %s - %s", res.Position, res.Driver, res.Team)
		}
		rep.Gate(checkTopThree, len(actual) >= 3)

		for _, c := range sport.Mismatches(sport.CompareRaceResults(sport.RequiredTopThree(), actual)) {
			rep.Notef("Position %d: expected %s (%s), actual %s (%s): driver mismatch",
				c.Position, c.Expected.Driver, c.Expected.Team, c.Actual.Driver, c.Actual.Team)
		}

		if d, ok := sport.SecondPlaceDefect(sport.RequiredSecondPlace, actual); ok {
			rep.AddFinding(report.Finding{
				Kind:     report.KindRequirementsDefect,
				Title:    "Requirements state the wrong 2nd place driver",
				Expected: fmt.Sprintf("%s in position %d", d.ExpectedDriver, d.Position),
				Actual:   fmt.Sprintf("%s in position %d", d.ActualDriver, d.Position),
				Recommendations: []string{
					"Report to the product owner for a requirements update",
				},
			})
			rep.Document(checkSecondPlace, true)
		}
		return nil
	})
}
