package aggregate

import (
	"fmt"

	"atlasqa/internal/countries/models"
)

// DefaultExpected is the count the business requirement states.
const DefaultExpected = 195

// Bounds used by the count checks.
const (
	reasonableMin = 100
	reasonableMax = 300
	closeEnough   = 10
)

// Standard is one published answer to "how many countries are there".
type Standard struct {
	Name  string `json:"name"`
	Count string `json:"count"`
}

// ReferenceStandards are the external counting standards quoted in reports.
var ReferenceStandards = []Standard{
	{Name: "UN Member States", Count: "193"},
	{Name: "UN Member States + Observers", Count: "195"},
	{Name: "Other organizations", Count: "196-206"},
}

// Option is one counting definition the requirement could be rewritten to use.
type Option struct {
	Label       string `json:"label"`
	Count       int    `json:"count"`
	Description string `json:"description"`
}

// CountAnalysis compares aggregated counts with the expected number.
type CountAnalysis struct {
	Counts          models.AggregateCounts `json:"counts"`
	Expected        int                    `json:"expected"`
	Difference      int                    `json:"difference"`
	ReasonableRange bool                   `json:"reasonable_range"`
	CloseToExpected bool                   `json:"close_to_expected"`
	Options         []Option               `json:"options"`
}

// Ambiguous reports whether the competing definitions disagree with each other
// or with the expectation.
func (a CountAnalysis) Ambiguous() bool {
	c := a.Counts
	return c.TotalEntries != a.Expected ||
		c.OfficiallyAssigned != c.Independent ||
		c.Independent != c.UNMember
}

// Analyze builds the count analysis. It never fails: mismatches are findings
// about the requirement, not errors.
func Analyze(counts models.AggregateCounts, expected int) CountAnalysis {
	if expected <= 0 {
		expected = DefaultExpected
	}
	diff := counts.OfficiallyAssigned - expected
	if diff < 0 {
		diff = -diff
	}
	return CountAnalysis{
		Counts:          counts,
		Expected:        expected,
		Difference:      diff,
		ReasonableRange: counts.TotalEntries > reasonableMin && counts.TotalEntries < reasonableMax,
		CloseToExpected: diff <= closeEnough,
		Options: []Option{
			{
				Label:       "A",
				Count:       expected,
				Description: fmt.Sprintf("%d UN-recognized countries (including observers)", expected),
			},
			{
				Label:       "B",
				Count:       counts.Independent,
				Description: fmt.Sprintf("%d sovereign nations", counts.Independent),
			},
			{
				Label:       "C",
				Count:       counts.OfficiallyAssigned,
				Description: fmt.Sprintf("%d officially assigned countries", counts.OfficiallyAssigned),
			},
		},
	}
}
