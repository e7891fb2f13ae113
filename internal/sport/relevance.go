package sport

import (
	"math"
	"strings"
)

// MinimumRelevant is the floor below which a search is considered broken.
const MinimumRelevant = 4

// relevanceShare is the ideal share of relevant results.
const relevanceShare = 0.6

// DefaultKeywords mark a result as sport content.
var DefaultKeywords = []string{
	"sport", "football", "racing", "tennis", "olympics",
	"premier", "cup", "match", "game", "championship",
	"league", "tournament", "athlete", "competition", "fitness",
}

// ResultRelevance is the keyword match for one result.
type ResultRelevance struct {
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
}

// Relevant reports whether any keyword matched.
func (r ResultRelevance) Relevant() bool {
	return len(r.Keywords) > 0
}

// RelevanceAnalysis summarises how sport-related a result set is.
type RelevanceAnalysis struct {
	Total    int `json:"total"`
	Relevant int `json:"relevant"`
	// Threshold is floor(0.6 * Total), the ideal relevant count.
	Threshold int               `json:"threshold"`
	Results   []ResultRelevance `json:"results"`
}

// Rate is the relevant share, zero for an empty set.
func (a RelevanceAnalysis) Rate() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Relevant) / float64(a.Total)
}

// MeetsThreshold reports whether the ideal share was reached.
func (a RelevanceAnalysis) MeetsThreshold() bool {
	return a.Relevant >= a.Threshold
}

// MeetsMinimum reports whether at least MinimumRelevant results matched.
func (a RelevanceAnalysis) MeetsMinimum() bool {
	return a.Relevant >= MinimumRelevant
}

// AnalyzeRelevance matches each result's title and description against
// keywords case-insensitively. Nil keywords means DefaultKeywords.
func AnalyzeRelevance(results []SearchResult, keywords []string) RelevanceAnalysis {
	if keywords == nil {
		keywords = DefaultKeywords
	}
	a := RelevanceAnalysis{
		Total:     len(results),
		Threshold: int(math.Floor(float64(len(results)) * relevanceShare)),
		Results:   make([]ResultRelevance, 0, len(results)),
	}
	for _, r := range results {
		content := strings.ToLower(r.Title + " " + r.Description)
		rr := ResultRelevance{Title: r.Title, Keywords: []string{}}
		for _, k := range keywords {
			if strings.Contains(content, strings.ToLower(k)) {
				rr.Keywords = append(rr.Keywords, k)
			}
		}
		if rr.Relevant() {
			a.Relevant++
		}
		a.Results = append(a.Results, rr)
	}
	return a
}
