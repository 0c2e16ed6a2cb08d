package species

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fishlog-identify/internal/common/config"
)

func TestOpenSource(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		wantName string
		wantErr  bool
	}{
		{
			name: "postgres",
			cfg: config.Config{
				Database:  config.DatabaseConfig{Postgres: config.PostgresConfig{Host: "localhost", Port: 5432, SSLMode: "disable"}},
				Directory: config.DirectoryConfig{Source: config.SourcePostgres, Table: "species", MaxRows: 10},
			},
			wantName: "postgres",
		},
		{
			name: "elasticsearch",
			cfg: config.Config{
				Database:  config.DatabaseConfig{Elasticsearch: config.ElasticsearchConfig{URL: "http://localhost:9200"}},
				Directory: config.DirectoryConfig{Source: config.SourceElasticsearch, Index: "species", MaxRows: 10},
			},
			wantName: "elasticsearch",
		},
		{
			name:     "file",
			cfg:      config.Config{Directory: config.DirectoryConfig{Source: config.SourceFile, Path: "species.json"}},
			wantName: "file",
		},
		{
			name:    "unknown",
			cfg:     config.Config{Directory: config.DirectoryConfig{Source: "ftp"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, closeFn, err := OpenSource(&tt.cfg)
			require.NotNil(t, closeFn)
			defer closeFn()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, src.Name())
		})
	}
}
