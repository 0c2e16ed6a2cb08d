package species

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Thon Rouge", "thon rouge"},
		{"trims", "  Bar \t", "bar"},
		{"strips accents", "Rascasse Rouge à écailles", "rascasse rouge a ecailles"},
		{"cedilla", "Maquereau Français", "maquereau francais"},
		{"precomposed and combining agree", "Bréme", "breme"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"keeps punctuation", "Bar (loup de mer)", "bar (loup de mer)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, in := range []string{"Sébaste", "  ÉPERLAN ", "Saint-Pierre", "ﬁlet"} {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), in)
	}
}
