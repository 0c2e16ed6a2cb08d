package identify

import (
	"strings"

	"fishlog-identify/internal/species"
)

// PromptMode records whether the classifier was held to the catalog.
type PromptMode string

const (
	PromptConstrained PromptMode = "constrained"
	PromptOpen        PromptMode = "open"
)

// UnknownLabel is the answer the classifier is told to give when nothing
// in the catalog fits.
const UnknownLabel = "unknown"

const answerShape = `{"primary":{"species":"<name>","confidence":<0-100>},"alternatives":[{"species":"<name>","confidence":<0-100>}]}`

// BuildPrompt picks the instruction for the classifier. Any directory with
// entries yields the constrained variant listing every canonical label;
// a nil or empty directory yields the open variant.
func BuildPrompt(dir *species.Directory) (string, PromptMode) {
	if dir.Len() > 0 {
		return buildConstrainedPrompt(dir.Labels()), PromptConstrained
	}
	return buildOpenPrompt(), PromptOpen
}

func buildConstrainedPrompt(labels []string) string {
	parts := []string{
		"You identify fish species from a single photo taken by an angler.",
		"Reply with one JSON object and nothing else, using exactly this shape:",
		answerShape,
		"Give at most 2 alternatives, most likely first.",
		"You MUST choose species names only from the list below, spelled exactly as written:",
	}
	for _, l := range labels {
		parts = append(parts, "- "+l)
	}
	parts = append(parts,
		`If no species in the list matches the fish, answer with "species":"`+UnknownLabel+`" and "confidence":0 as the primary and no alternatives.`,
	)
	return strings.Join(parts, "\n")
}

func buildOpenPrompt() string {
	parts := []string{
		"You identify fish species from a single photo taken by an angler.",
		"Reply with one JSON object and nothing else, using exactly this shape:",
		answerShape,
		"Give at most 2 alternatives, most likely first.",
		"Use the common name of each species.",
		`If the photo shows no identifiable fish, answer with "species":"` + UnknownLabel + `" and "confidence":0.`,
	}
	return strings.Join(parts, "\n")
}
