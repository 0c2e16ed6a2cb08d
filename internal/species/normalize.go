// Package species holds the species catalog used to constrain and
// harmonize classifier answers.
package species

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = runes.Remove(runes.In(unicode.Mn))

// Normalize returns the comparison key of a species label: trimmed,
// lowercased, canonically decomposed with combining marks removed.
func Normalize(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	if s == "" {
		return ""
	}
	// transform.Chain is stateful, so build one per call.
	t := transform.Chain(norm.NFD, stripMarks)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(out)
}
