package identify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"fishlog-identify/internal/species"
)

func TestBuildPrompt(t *testing.T) {
	t.Run("constrained lists every label", func(t *testing.T) {
		dir := species.NewDirectory()
		dir.Add("Thon rouge")
		dir.Add("Bar (loup de mer)")

		prompt, mode := BuildPrompt(dir)
		assert.Equal(t, PromptConstrained, mode)
		assert.Contains(t, prompt, "- Thon rouge\n- Bar (loup de mer)")
		assert.Contains(t, prompt, `"species":"unknown" and "confidence":0`)
		assert.Contains(t, prompt, `"primary"`)
		assert.Less(t, strings.Index(prompt, "Thon rouge"), strings.Index(prompt, "Bar (loup de mer)"))
	})

	t.Run("nil directory is open", func(t *testing.T) {
		prompt, mode := BuildPrompt(nil)
		assert.Equal(t, PromptOpen, mode)
		assert.NotContains(t, prompt, "MUST choose")
		assert.Contains(t, prompt, `"alternatives"`)
	})

	t.Run("empty directory is open", func(t *testing.T) {
		_, mode := BuildPrompt(species.NewDirectory())
		assert.Equal(t, PromptOpen, mode)
	})
}
