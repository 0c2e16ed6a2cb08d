package species

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource_FetchAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "species.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"1","species":[
		{"french_name":"Dorade royale"},
		{"name":"Maquereau"}
	]}`), 0o644))

	src := NewFileSource(path)
	assert.Equal(t, "file", src.Name())

	dir, err := NewLoader(src, 0).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Dorade royale", "Maquereau"}, dir.Labels())
}

func TestFileSource_Missing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.json")).FetchAll(context.Background())
	assert.Error(t, err)
}

func TestFileSource_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFileSource("unused").FetchAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
