package suggestion

import (
	"fishlog-identify/internal/models"
	"fishlog-identify/internal/species"
)

// UnknownSentinels are the normalized labels a classifier uses to say it
// recognised nothing.
var UnknownSentinels = map[string]struct{}{
	"unknown": {},
	"inconnu": {},
	"unk":     {},
}

// IsUnknown reports whether s carries no identification: an unknown
// sentinel label or a zero confidence.
func IsUnknown(s models.Suggestion) bool {
	if s.Confidence == 0 {
		return true
	}
	_, ok := UnknownSentinels[species.Normalize(s.Species)]
	return ok
}

// AllUnmatched reports whether every suggestion is unknown. An empty list
// is not unmatched; it is the caller's no-suggestion case.
func AllUnmatched(list []models.Suggestion) bool {
	if len(list) == 0 {
		return false
	}
	for _, s := range list {
		if !IsUnknown(s) {
			return false
		}
	}
	return true
}
