package sport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeRelevance(t *testing.T) {
	t.Run("demo results are all relevant", func(t *testing.T) {
		a := AnalyzeRelevance(DemoSearchResults(), nil)
		assert.Equal(t, 4, a.Total)
		assert.Equal(t, 4, a.Relevant)
		assert.Equal(t, 2, a.Threshold)
		assert.True(t, a.MeetsThreshold())
		assert.True(t, a.MeetsMinimum())
		assert.Equal(t, 1.0, a.Rate())
		assert.Contains(t, a.Results[1].Keywords, "match")
	})

	t.Run("threshold is floor of sixty percent", func(t *testing.T) {
		results := []SearchResult{
			{Title: "Premier League round-up"},
			{Title: "Weather"},
			{Title: "Tennis news"},
			{Title: "Markets"},
			{Title: "Recipes"},
		}
		a := AnalyzeRelevance(results, nil)
		assert.Equal(t, 3, a.Threshold)
		assert.Equal(t, 2, a.Relevant)
		assert.False(t, a.MeetsThreshold())
		assert.False(t, a.MeetsMinimum())
		assert.Empty(t, a.Results[1].Keywords)
	})

	t.Run("matching is case-insensitive over title and description", func(t *testing.T) {
		a := AnalyzeRelevance([]SearchResult{{Title: "Result", Description: "OLYMPICS schedule"}}, []string{"olympics"})
		assert.Equal(t, 1, a.Relevant)
	})

	t.Run("empty input", func(t *testing.T) {
		a := AnalyzeRelevance(nil, nil)
		assert.Zero(t, a.Total)
		assert.Zero(t, a.Rate())
		assert.True(t, a.MeetsThreshold())
		assert.False(t, a.MeetsMinimum())
	})

	t.Run("fifteen default keywords", func(t *testing.T) {
		assert.Len(t, DefaultKeywords, 15)
	})
}

func TestCompareRaceResults(t *testing.T) {
	comparisons := CompareRaceResults(RequiredTopThree(), DemoRaceResults())
	require.Len(t, comparisons, 3)

	assert.True(t, comparisons[0].DriverMatches())
	assert.False(t, comparisons[1].DriverMatches())
	assert.True(t, comparisons[2].DriverMatches())

	mismatches := Mismatches(comparisons)
	require.Len(t, mismatches, 1)
	assert.Equal(t, 2, mismatches[0].Position)

	t.Run("short actual list marks missing positions", func(t *testing.T) {
		c := CompareRaceResults(RequiredTopThree(), DemoRaceResults()[:1])
		assert.True(t, c[0].Present)
		assert.False(t, c[1].Present)
		assert.False(t, c[1].DriverMatches())
		assert.Empty(t, Mismatches(c))
	})
}

func TestSecondPlaceDefect(t *testing.T) {
	t.Run("different driver is a defect", func(t *testing.T) {
		d, ok := SecondPlaceDefect(RequiredSecondPlace, DemoRaceResults())
		require.True(t, ok)
		assert.Equal(t, Defect{Position: 2, ExpectedDriver: "George Russell", ActualDriver: "Charles Leclerc"}, d)
	})

	t.Run("matching driver is not", func(t *testing.T) {
		_, ok := SecondPlaceDefect(RequiredSecondPlace, RequiredTopThree())
		assert.False(t, ok)
	})

	t.Run("missing second place is not", func(t *testing.T) {
		_, ok := SecondPlaceDefect(RequiredSecondPlace, DemoRaceResults()[:1])
		assert.False(t, ok)
		_, ok = SecondPlaceDefect(RequiredSecondPlace, nil)
		assert.False(t, ok)
	})
}
