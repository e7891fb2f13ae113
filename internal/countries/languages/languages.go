// Package languages checks a country's official language list against a known
// legal change: South African Sign Language (SASL) became South Africa's 12th
// official language in 2023.
package languages

import (
	"strings"

	"atlasqa/internal/countries/models"
)

// SouthAfricaCode is the alpha-3 code queried by the language suite.
const SouthAfricaCode = "ZAF"

// Language counts before and after SASL recognition.
const (
	PreSASLCount  = 11
	ExpectedCount = 12
)

var saslPatterns = []string{"south african sign", "sign language", "sasl"}

// Assessment classifies the language count against the expected count.
type Assessment string

const (
	AssessmentPreSASL            Assessment = "pre-sasl"
	AssessmentComplete           Assessment = "complete"
	AssessmentNeedsInvestigation Assessment = "needs-investigation"
	AssessmentOther              Assessment = "other"
)

// Analysis is the language picture for one country record.
type Analysis struct {
	Country         string     `json:"country"`
	Languages       []string   `json:"languages"`
	Count           int        `json:"count"`
	HasSASL         bool       `json:"has_sasl"`
	AnySignLanguage bool       `json:"any_sign_language"`
	Assessment      Assessment `json:"assessment"`
}

// Gap reports whether the data still lacks SASL.
func (a Analysis) Gap() bool {
	return !a.HasSASL
}

// Analyze inspects the record's languages.
func Analyze(c models.Country) Analysis {
	names := c.LanguageNames()
	label := c.CommonName()
	if label == "" {
		label = "South Africa"
	}

	a := Analysis{
		Country:         label,
		Languages:       names,
		Count:           len(names),
		HasSASL:         HasSASL(names),
		AnySignLanguage: anyContains(names, "sign"),
	}
	a.Assessment = assess(a.Count, a.HasSASL)
	return a
}

// HasSASL reports whether any name matches one of the SASL patterns.
func HasSASL(names []string) bool {
	for _, p := range saslPatterns {
		if anyContains(names, p) {
			return true
		}
	}
	return false
}

func anyContains(names []string, needle string) bool {
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), needle) {
			return true
		}
	}
	return false
}

func assess(count int, hasSASL bool) Assessment {
	switch {
	case count == PreSASLCount && !hasSASL:
		return AssessmentPreSASL
	case count == ExpectedCount && hasSASL:
		return AssessmentComplete
	case count == ExpectedCount && !hasSASL:
		return AssessmentNeedsInvestigation
	default:
		return AssessmentOther
	}
}
