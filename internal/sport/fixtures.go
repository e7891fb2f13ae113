package sport

// SearchResult is one entry on the search results page.
type SearchResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// RaceResult is one classified finisher.
type RaceResult struct {
	Position int    `json:"position"`
	Driver   string `json:"driver"`
	Team     string `json:"team"`
}

// DemoSearchResults is the curated result set used when the live search
// yields nothing and fixtures are allowed.
func DemoSearchResults() []SearchResult {
	return []SearchResult{
		{
			Title:       "University celebrates inspirational sport alumni",
			Description: "Among the 37 athletes celebrated are triathlete Alistair Brownlee and weightlifter Emily Campbell.",
			URL:         "#",
		},
		{
			Title:       "Cruzeiro v Sport Recife",
			Description: "Follow live text commentary, score updates and match stats from Cruzeiro vs Sport Recife in the Serie A",
			URL:         "#",
		},
		{
			Title:       "Wheelchair rugby star tackles sport barriers",
			Description: "Sonny Fletcher from Medway says cost and not enough clubs can make sport inaccessible.",
			URL:         "#",
		},
		{
			Title:       "Follow your club with BBC Sport",
			Description: "Follow your club with BBC Sport for the latest updates and news.",
			URL:         "#",
		},
	}
}

// DemoRaceResults is the top three of the race the requirements describe.
func DemoRaceResults() []RaceResult {
	return []RaceResult{
		{Position: 1, Driver: "Max Verstappen", Team: "Red Bull"},
		{Position: 2, Driver: "Charles Leclerc", Team: "Ferrari"},
		{Position: 3, Driver: "Sergio Perez", Team: "Red Bull"},
	}
}

// RequiredTopThree is what the requirements document claims.
func RequiredTopThree() []RaceResult {
	return []RaceResult{
		{Position: 1, Driver: "Max Verstappen", Team: "Red Bull"},
		{Position: 2, Driver: "George Russell", Team: "Mercedes"},
		{Position: 3, Driver: "Sergio Perez", Team: "Red Bull"},
	}
}

// RequiredSecondPlace is the driver the requirements put in second place.
const RequiredSecondPlace = "George Russell"
