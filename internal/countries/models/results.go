package models

// ValidationResult is the outcome of validating one record.
type ValidationResult struct {
	Label  string   `json:"label"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// AggregateCounts holds the competing "country" counts for one fetch.
//
// OfficiallyAssigned + OtherStatuses == TotalEntries, and the ByRegion values
// sum to TotalEntries.
type AggregateCounts struct {
	TotalEntries       int            `json:"total_entries"`
	OfficiallyAssigned int            `json:"officially_assigned"`
	OtherStatuses      int            `json:"other_statuses"`
	Independent        int            `json:"independent"`
	UNMember           int            `json:"un_member"`
	ByRegion           map[string]int `json:"by_region"`
}
