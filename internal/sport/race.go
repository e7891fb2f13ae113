package sport

// PositionComparison lines up one expected finisher with what was observed.
type PositionComparison struct {
	Position int        `json:"position"`
	Expected RaceResult `json:"expected"`
	Actual   RaceResult `json:"actual"`
	// Present is false when the actual results stop before this position.
	Present bool `json:"present"`
}

// DriverMatches reports whether the observed driver is the expected one.
func (c PositionComparison) DriverMatches() bool {
	return c.Present && c.Actual.Driver == c.Expected.Driver
}

// CompareRaceResults pairs expected and actual finishers by index.
func CompareRaceResults(expected, actual []RaceResult) []PositionComparison {
	out := make([]PositionComparison, 0, len(expected))
	for i, e := range expected {
		c := PositionComparison{Position: i + 1, Expected: e}
		if i < len(actual) {
			c.Actual = actual[i]
			c.Present = true
		}
		out = append(out, c)
	}
	return out
}

// Mismatches returns the comparisons whose driver differs.
func Mismatches(comparisons []PositionComparison) []PositionComparison {
	var out []PositionComparison
	for _, c := range comparisons {
		if c.Present && !c.DriverMatches() {
			out = append(out, c)
		}
	}
	return out
}

// Defect is a position where the requirements disagree with the results.
type Defect struct {
	Position       int    `json:"position"`
	ExpectedDriver string `json:"expected_driver"`
	ActualDriver   string `json:"actual_driver"`
}

// SecondPlaceDefect reports a defect when a second place finisher exists and
// is not expectedDriver. Missing results are not a defect.
func SecondPlaceDefect(expectedDriver string, actual []RaceResult) (Defect, bool) {
	if len(actual) < 2 || actual[1].Driver == "" {
		return Defect{}, false
	}
	if actual[1].Driver == expectedDriver {
		return Defect{}, false
	}
	return Defect{Position: 2, ExpectedDriver: expectedDriver, ActualDriver: actual[1].Driver}, true
}
