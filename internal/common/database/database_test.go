package database

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fishlog-identify/internal/common/config"
)

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()))
	assert.NotNil(t, client.GetClient())

	_, err = NewRedis(config.RedisConfig{})
	assert.Error(t, err)
}

func TestRedisPing_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	err = client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

func TestNewPostgres_DoesNotDial(t *testing.T) {
	client, err := NewPostgres(config.PostgresConfig{
		Host: "127.0.0.1", Port: 1, User: "u", Database: "d", SSLMode: "disable",
		MaxConnections: 2, MaxIdle: 1,
	})
	require.NoError(t, err)
	assert.NotNil(t, client.GetDB())
	assert.NoError(t, client.Close())
}

func TestCatalogDSN_ReadOnlySession(t *testing.T) {
	dsn := catalogDSN(config.PostgresConfig{
		Host: "db", Port: 5432, User: "fishlog", Database: "fishlog", SSLMode: "disable",
	})

	assert.Contains(t, dsn, "host=db port=5432")
	assert.Contains(t, dsn, "application_name=fishlog-identify")
	assert.Contains(t, dsn, "default_transaction_read_only=on")
}

func TestNewElasticsearch(t *testing.T) {
	client, err := NewElasticsearch(config.ElasticsearchConfig{URL: "http://localhost:9200"}, nil)
	require.NoError(t, err)
	assert.NotNil(t, client.Client)

	_, err = NewElasticsearch(config.ElasticsearchConfig{}, nil)
	assert.Error(t, err)
}

func TestElasticsearchPing(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := NewElasticsearch(config.ElasticsearchConfig{Addresses: []string{srv.URL}}, http.DefaultTransport)
	require.NoError(t, err)

	assert.NoError(t, client.Ping(context.Background()))

	status = http.StatusUnauthorized
	err = client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
