package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_DefaultsAndExpansion(t *testing.T) {
	t.Setenv("TEST_CLASSIFIER_KEY", "sk-test")
	t.Setenv("CLASSIFIER_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	path := writeConfig(t, `
app:
  name: identify-test
classifier:
  api_key: ${TEST_CLASSIFIER_KEY}
database:
  postgres:
    host: localhost
    user: fishlog
    database: fishlog
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "identify-test", cfg.App.Name)
	assert.Equal(t, "sk-test", cfg.Classifier.APIKey)
	assert.Equal(t, 300, cfg.Classifier.MaxOutputTokens)
	assert.Equal(t, 30000, cfg.Classifier.Timeout)
	assert.Equal(t, SourcePostgres, cfg.Directory.Source)
	assert.Equal(t, "species", cfg.Directory.Table)
	assert.Equal(t, 5000, cfg.Directory.MaxRows)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Empty(t, cfg.MissingCredentials())
}

func TestLoadFromFile_RejectsUnknownSource(t *testing.T) {
	path := writeConfig(t, `
directory:
  source: mongodb
`)
	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory.source")
}

func TestLoadFromFile_RateLimitNeedsRedis(t *testing.T) {
	path := writeConfig(t, `
rate_limit:
  enabled: true
`)
	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.redis.address")
}

func TestLoadFromFile_TrustedProxies(t *testing.T) {
	path := writeConfig(t, `
database:
  redis:
    address: localhost:6379
rate_limit:
  enabled: true
  trusted_proxies: ["10.0.0.0/8", "192.0.2.10"]
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.10"}, cfg.RateLimit.TrustedProxies)

	path = writeConfig(t, `
database:
  redis:
    address: localhost:6379
rate_limit:
  enabled: true
  trusted_proxies: ["lb.internal"]
`)
	_, err = LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit.trusted_proxies")
}

func TestMissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "postgres source without anything",
			cfg:  Config{Directory: DirectoryConfig{Source: SourcePostgres}},
			want: []string{
				"classifier.api_key", "classifier.base_url",
				"database.postgres.host", "database.postgres.user", "database.postgres.database",
			},
		},
		{
			name: "elasticsearch source",
			cfg: Config{
				Directory:  DirectoryConfig{Source: SourceElasticsearch},
				Classifier: ClassifierConfig{APIKey: "k", BaseURL: "http://x"},
			},
			want: []string{"database.elasticsearch.addresses"},
		},
		{
			name: "file source fully configured",
			cfg: Config{
				Directory:  DirectoryConfig{Source: SourceFile, Path: "species.json"},
				Classifier: ClassifierConfig{APIKey: "k", BaseURL: "http://x"},
			},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.MissingCredentials())
		})
	}
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
