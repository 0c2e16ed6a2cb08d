// internal/models/suggestion.go
package models

// SuggestionSource tells where the returned species label comes from.
type SuggestionSource string

const (
	SourceDatabase SuggestionSource = "database"
	SourceAI       SuggestionSource = "ai"
)

// MaxSuggestions bounds a response: one primary and two alternatives.
const MaxSuggestions = 3

// Suggestion is one candidate species for an image.
type Suggestion struct {
	Species    string           `json:"species"`
	Confidence int              `json:"confidence"`
	Matched    bool             `json:"matched"`
	Source     SuggestionSource `json:"source"`
	Unmatched  bool             `json:"unmatched,omitempty"`
}

// IdentifyRequest is the inbound request body.
type IdentifyRequest struct {
	Image string `json:"image"`
}

// IdentifyResponse is the outbound success body. When Unmatched is set the
// suggestion list is empty and Error explains why.
type IdentifyResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
	Unmatched   bool         `json:"unmatched,omitempty"`
	Error       string       `json:"error,omitempty"`
}
