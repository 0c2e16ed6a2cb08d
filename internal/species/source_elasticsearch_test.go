package species

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestES(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/" {
			_, _ = w.Write([]byte(`{"version":{"number":"8.11.0","build_flavor":"default"},"tagline":"You Know, for Search"}`))
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func TestElasticsearchSource_FetchAll(t *testing.T) {
	var gotPath, gotSize string
	var gotBody map[string]interface{}

	client := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSize = r.URL.Query().Get("size")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"hits":{"hits":[
			{"_source":{"name":"Thon rouge"}},
			{"_source":null},
			{"_source":{"common_name":"Pollock"}}
		]}}`))
	})

	got, err := NewElasticsearchSource(client, "species", 250).FetchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/species/_search", gotPath)
	assert.Equal(t, "250", gotSize)
	assert.Contains(t, gotBody, "query")
	require.Len(t, got, 2)
	assert.Equal(t, []string{"Thon rouge", "Pollock"}, BuildDirectory(got).Labels())
}

func TestElasticsearchSource_ErrorStatus(t *testing.T) {
	client := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"index_not_found_exception"}}`))
	})

	_, err := NewElasticsearchSource(client, "species", 10).FetchAll(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "index_not_found_exception"))
}

func TestElasticsearchSource_Ping(t *testing.T) {
	client := newTestES(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.NoError(t, NewElasticsearchSource(client, "species", 10).Ping(context.Background()))
}
