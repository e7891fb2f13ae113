// Package validator checks country records against the expected schema and
// business enumerations. Violations are collected, never short-circuited, so
// one call reports everything wrong with a record.
package validator

import (
	"fmt"

	"atlasqa/internal/countries/models"
)

// Validation messages. Tests and reports match on these strings.
const (
	MsgMissingName     = "Missing name object"
	MsgMissingCommon   = "Missing common name"
	MsgMissingOfficial = "Missing official name"
	MsgMissingCCA3     = "Missing cca3 code"
	MsgMissingRegion   = "Missing region"
	MsgMissingStatus   = "Missing status"
)

// Validate checks one record. index is the record's position in its batch and
// labels the result when the record has no common name.
func Validate(c models.Country, index int) models.ValidationResult {
	errs := []string{}

	if c.Name == nil {
		errs = append(errs, MsgMissingName)
	} else {
		if c.Name.Common == "" {
			errs = append(errs, MsgMissingCommon)
		}
		if c.Name.Official == "" {
			errs = append(errs, MsgMissingOfficial)
		}
	}

	if c.CCA3 == "" {
		errs = append(errs, MsgMissingCCA3)
	}
	if c.Region == "" {
		errs = append(errs, MsgMissingRegion)
	}
	if c.Status == "" {
		errs = append(errs, MsgMissingStatus)
	}

	if c.Region != "" && !models.IsValidRegion(c.Region) {
		errs = append(errs, fmt.Sprintf("Invalid region: %s", c.Region))
	}
	if c.Status != "" && !models.IsValidStatus(c.Status) {
		errs = append(errs, fmt.Sprintf("Invalid status: %s", c.Status))
	}

	return models.ValidationResult{
		Label:  Label(c, index),
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// Label names a record for reporting: its common name, or Country-<index>.
func Label(c models.Country, index int) string {
	if name := c.CommonName(); name != "" {
		return name
	}
	return fmt.Sprintf("Country-%d", index)
}

// HasRequiredStructure is the cheap pre-check used before deeper analysis:
// name, cca3 and status must be present.
func HasRequiredStructure(c models.Country) bool {
	return c.Name != nil && c.CCA3 != "" && c.Status != ""
}

// Summary is the fold of Validate over a batch.
type Summary struct {
	Total    int                       `json:"total"`
	Valid    int                       `json:"valid"`
	Invalid  int                       `json:"invalid"`
	Failures []models.ValidationResult `json:"failures"`
}

// AllValid reports whether no record failed validation.
func (s Summary) AllValid() bool {
	return s.Invalid == 0
}

// ValidateAll validates every record and returns the counts together with the
// failing results in input order.
func ValidateAll(records []models.Country) Summary {
	summary := Summary{Total: len(records), Failures: []models.ValidationResult{}}
	for i, c := range records {
		res := Validate(c, i)
		if res.Valid {
			summary.Valid++
			continue
		}
		summary.Invalid++
		summary.Failures = append(summary.Failures, res)
	}
	return summary
}
