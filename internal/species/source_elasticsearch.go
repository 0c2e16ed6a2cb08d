package species

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"

	"fishlog-identify/internal/models"
)

// ElasticsearchSource reads the catalog from a search index, one document
// per species. Documents keep their indexing order (sorted by _doc).
type ElasticsearchSource struct {
	client  *elasticsearch.Client
	index   string
	maxRows int
}

func NewElasticsearchSource(client *elasticsearch.Client, index string, maxRows int) *ElasticsearchSource {
	return &ElasticsearchSource{client: client, index: index, maxRows: maxRows}
}

func (s *ElasticsearchSource) Name() string { return "elasticsearch" }

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source map[string]interface{} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticsearchSource) FetchAll(ctx context.Context) ([]models.Record, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		"sort":  []interface{}{"_doc"},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
		s.client.Search.WithSize(s.maxRows),
	)
	if err != nil {
		return nil, fmt.Errorf("search species: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("search species: %s: %s", res.Status(), raw)
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]models.Record, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		if hit.Source == nil {
			continue
		}
		out = append(out, models.Record(hit.Source))
	}
	return out, nil
}

// Ping reports whether the cluster answers.
func (s *ElasticsearchSource) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: %s", res.Status())
	}
	return nil
}
