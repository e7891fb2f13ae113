// Package aggregate derives counts from a batch of country records and compares
// them with the "number of countries" a requirement asks for.
package aggregate

import "atlasqa/internal/countries/models"

// Aggregate folds records into the competing counts. It is pure and safe to call
// concurrently on shared input.
func Aggregate(records []models.Country) models.AggregateCounts {
	counts := models.AggregateCounts{
		TotalEntries: len(records),
		ByRegion:     make(map[string]int),
	}
	for _, c := range records {
		if c.Status == models.StatusOfficiallyAssigned {
			counts.OfficiallyAssigned++
		} else {
			counts.OtherStatuses++
		}
		if c.IsIndependent() {
			counts.Independent++
		}
		if c.UNMember {
			counts.UNMember++
		}

		region := c.Region
		if region == "" {
			region = models.RegionUnknown
		}
		counts.ByRegion[region]++
	}
	return counts
}
