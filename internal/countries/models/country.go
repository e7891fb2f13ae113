// Package models holds the country records returned by the countries API and the
// values derived from them by the validator and the aggregator.
package models

import (
	"slices"
	"strings"
)

// Region and status enumerations accepted by the schema validator.
const (
	RegionAntarctic = "Antarctic"
	RegionAmericas  = "Americas"
	RegionEurope    = "Europe"
	RegionAfrica    = "Africa"
	RegionAsia      = "Asia"
	RegionOceania   = "Oceania"

	// RegionUnknown buckets records without a region when counting.
	RegionUnknown = "Unknown"

	StatusOfficiallyAssigned = "officially-assigned"
	StatusUserAssigned       = "user-assigned"
)

// Regions lists the valid regions in the order the API documents them.
var Regions = []string{
	RegionAntarctic,
	RegionAmericas,
	RegionEurope,
	RegionAfrica,
	RegionAsia,
	RegionOceania,
}

// Statuses lists the valid ISO 3166-1 assignment statuses.
var Statuses = []string{StatusOfficiallyAssigned, StatusUserAssigned}

// DefaultFields is the field selection used when fetching every country.
var DefaultFields = []string{"name", "cca3", "region", "status", "independent", "unMember"}

// Name is the nested name object of a country record.
type Name struct {
	Common   string `json:"common,omitempty"`
	Official string `json:"official,omitempty"`
}

// Country is a snapshot of one record from the countries API. The record is
// external data: fields may be missing, and empty strings count as missing.
type Country struct {
	Name        *Name             `json:"name,omitempty"`
	CCA3        string            `json:"cca3,omitempty"`
	Region      string            `json:"region,omitempty"`
	Status      string            `json:"status,omitempty"`
	Independent *bool             `json:"independent,omitempty"`
	UNMember    bool              `json:"unMember,omitempty"`
	Languages   map[string]string `json:"languages,omitempty"`
}

// CommonName returns the common name, or "" when the name object is absent.
func (c Country) CommonName() string {
	if c.Name == nil {
		return ""
	}
	return c.Name.Common
}

// IsIndependent reports whether the record is flagged independent.
func (c Country) IsIndependent() bool {
	return c.Independent != nil && *c.Independent
}

// LanguageNames returns the language display names ordered by language code.
func (c Country) LanguageNames() []string {
	codes := make([]string, 0, len(c.Languages))
	for code := range c.Languages {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	names := make([]string, 0, len(codes))
	for _, code := range codes {
		names = append(names, c.Languages[code])
	}
	return names
}

// IsValidRegion reports whether region is one of Regions.
func IsValidRegion(region string) bool {
	return slices.Contains(Regions, region)
}

// IsValidStatus reports whether status is one of Statuses.
func IsValidStatus(status string) bool {
	return slices.Contains(Statuses, status)
}

// NormalizeCode upper-cases and trims an alpha code before it goes on the wire.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
