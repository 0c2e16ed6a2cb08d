package species

import (
	"context"

	"fishlog-identify/internal/models"
	"fishlog-identify/pkg/catalog"
)

// FileSource reads a JSON seed catalog on every fetch, for local
// development without a database.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) FetchAll(ctx context.Context) ([]models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cat, err := catalog.Load(s.path)
	if err != nil {
		return nil, err
	}
	out := make([]models.Record, len(cat.Species))
	for i, row := range cat.Species {
		out[i] = models.Record(row)
	}
	return out, nil
}
