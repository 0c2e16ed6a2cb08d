// Package suggestion turns a decoded classifier answer into candidate
// species suggestions.
package suggestion

import (
	"fishlog-identify/internal/models"
)

// Field priority lists for candidate objects. The classifier is free-form
// and has been seen answering in French.
var (
	SpeciesFields    = []string{"species", "name", "label", "espece", "option", "title"}
	ConfidenceFields = []string{"confidence", "percentage", "percent", "score", "confiance"}
)

const (
	PrimaryField      = "primary"
	AlternativesField = "alternatives"
)

// Extract reads the primary candidate then every alternative, in order,
// and keeps at most models.MaxSuggestions of those with a usable label.
// Suggestions are never re-sorted by confidence. Matching fields are left
// for the caller to fill.
func Extract(parsed models.Record) []models.Suggestion {
	out := make([]models.Suggestion, 0, models.MaxSuggestions)

	add := func(v interface{}) {
		if len(out) >= models.MaxSuggestions {
			return
		}
		if s, ok := fromCandidate(v); ok {
			out = append(out, s)
		}
	}

	add(parsed[PrimaryField])
	if alts, ok := parsed[AlternativesField].([]interface{}); ok {
		for _, alt := range alts {
			add(alt)
		}
	}
	return out
}

func fromCandidate(v interface{}) (models.Suggestion, bool) {
	rec, ok := models.AsRecord(v)
	if !ok {
		return models.Suggestion{}, false
	}
	label, ok := rec.FirstString(SpeciesFields...)
	if !ok {
		return models.Suggestion{}, false
	}
	conf, _ := rec.FirstPresent(ConfidenceFields...)
	return models.Suggestion{
		Species:    label,
		Confidence: NormalizeConfidence(conf),
	}, true
}
