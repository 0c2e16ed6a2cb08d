package species

import (
	"context"
	"fmt"
	"time"

	"fishlog-identify/internal/models"
)

// LabelFields is the priority order used to read a species name from a
// catalog row. Catalog tables have been migrated several times and expose
// the name under different columns.
var LabelFields = []string{
	"name",
	"french_name",
	"english_name",
	"nom_commun",
	"common_name",
	"label",
	"title",
}

// Source is a read-only catalog that can be fully scanned.
type Source interface {
	Name() string
	FetchAll(ctx context.Context) ([]models.Record, error)
}

// Loader builds a Directory from a Source.
type Loader struct {
	source  Source
	timeout time.Duration
}

// NewLoader returns a loader. A zero timeout leaves the caller's deadline
// untouched.
func NewLoader(source Source, timeout time.Duration) *Loader {
	return &Loader{source: source, timeout: timeout}
}

// SourceName returns the name of the underlying source.
func (l *Loader) SourceName() string {
	if l == nil || l.source == nil {
		return "none"
	}
	return l.source.Name()
}

// Load fetches every row and builds a fresh directory. Any source failure
// is returned as an error and no directory: callers fall back to
// unconstrained classification instead of failing.
func (l *Loader) Load(ctx context.Context) (*Directory, error) {
	if l == nil || l.source == nil {
		return nil, fmt.Errorf("no species source configured")
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	rows, err := l.source.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.source.Name(), err)
	}
	return BuildDirectory(rows), nil
}

// BuildDirectory resolves a label for each row and inserts it in row
// order. Rows without a usable label are skipped.
func BuildDirectory(rows []models.Record) *Directory {
	dir := NewDirectory()
	for _, row := range rows {
		label, ok := row.FirstString(LabelFields...)
		if !ok {
			continue
		}
		dir.Add(label)
	}
	return dir
}
