package species

import (
	"context"
	"fmt"

	"fishlog-identify/internal/common/config"
	"fishlog-identify/internal/common/database"
	commonhttp "fishlog-identify/internal/common/http"
)

// Pinger is implemented by sources backed by a remote store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpenSource builds the source selected by cfg.Directory.Source. The
// returned close function releases its connections and is never nil.
func OpenSource(cfg *config.Config) (Source, func() error, error) {
	noop := func() error { return nil }
	dir := cfg.Directory

	switch dir.Source {
	case config.SourcePostgres:
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, noop, err
		}
		return NewPostgresSource(pg.GetDB(), dir.Table, dir.MaxRows), pg.Close, nil

	case config.SourceElasticsearch:
		pooled := commonhttp.NewClient(0).HTTPClient().Transport
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch, pooled)
		if err != nil {
			return nil, noop, err
		}
		return NewElasticsearchSource(es.Client, dir.Index, dir.MaxRows), noop, nil

	case config.SourceFile:
		return NewFileSource(dir.Path), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown directory source %q", dir.Source)
	}
}
