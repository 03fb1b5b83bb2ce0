package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"tourdesk/internal/models"
)

// Config содержит конфигурацию для подключения к Elasticsearch
type Config struct {
	Enabled    bool
	URL        string
	Index      string
	Username   string
	Password   string
	MaxRetries int
}

// ElasticsearchClient индексирует и ищет шоу тура
type ElasticsearchClient struct {
	client *elasticsearch.Client
	config Config
}

// NewElasticsearchClient создает клиент и индекс, если его нет
func NewElasticsearchClient(cfg Config) (*ElasticsearchClient, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     []string{cfg.URL},
		Username:      cfg.Username,
		Password:      cfg.Password,
		RetryOnStatus: []int{502, 503, 504, 429},
		MaxRetries:    cfg.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	client := &ElasticsearchClient{client: es, config: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.ensureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}
	return client, nil
}

func (c *ElasticsearchClient) ensureIndex(ctx context.Context) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{c.config.Index}}.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		slog.Info("Elasticsearch index already exists", "index", c.config.Index)
		return nil
	}

	body, err := json.Marshal(indexMapping())
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	createRes, err := esapi.IndicesCreateRequest{
		Index: c.config.Index,
		Body:  bytes.NewReader(body),
	}.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("failed to create index: %s", createRes.String())
	}

	slog.Info("Created Elasticsearch index", "index", c.config.Index)
	return nil
}

func indexMapping() map[string]any {
	text := func() map[string]any {
		return map[string]any{
			"type":     "text",
			"analyzer": "folding",
			"fields": map[string]any{
				"keyword": map[string]any{"type": "keyword", "ignore_above": 256},
			},
		}
	}
	price := map[string]any{"type": "scaled_float", "scaling_factor": 100}

	return map[string]any{
		"settings": map[string]any{
			"number_of_shards":   1,
			"number_of_replicas": 0,
			"analysis": map[string]any{
				"analyzer": map[string]any{
					// "Sao Paulo" finds "São Paulo"
					"folding": map[string]any{
						"type":      "custom",
						"tokenizer": "standard",
						"filter":    []string{"lowercase", "asciifolding"},
					},
				},
			},
		},
		"mappings": map[string]any{
			"properties": map[string]any{
				"id":             map[string]any{"type": "keyword"},
				"date":           map[string]any{"type": "keyword"},
				"day":            map[string]any{"type": "keyword"},
				"city":           text(),
				"venue":          text(),
				"address":        map[string]any{"type": "text", "analyzer": "folding"},
				"country":        text(),
				"region":         map[string]any{"type": "keyword"},
				"standard_price": price,
				"vip_price":      price,
				"standard_seats": map[string]any{"type": "integer"},
				"vip_seats":      map[string]any{"type": "integer"},
				"sold_out":       map[string]any{"type": "boolean"},
			},
		},
	}
}

// IndexShows переиндексирует все шоу одним bulk-запросом
func (c *ElasticsearchClient) IndexShows(ctx context.Context, docs []models.ShowDocument) error {
	if len(docs) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, doc := range docs {
		meta := map[string]any{"index": map[string]any{"_index": c.config.Index, "_id": doc.ID}}
		if err := enc.Encode(meta); err != nil {
			return fmt.Errorf("failed to encode bulk meta: %w", err)
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode show %s: %w", doc.ID, err)
		}
	}

	res, err := esapi.BulkRequest{Body: &buf, Refresh: "wait_for"}.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to bulk index shows: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk indexing error: %s", res.String())
	}

	var bulk struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulk); err != nil {
		return fmt.Errorf("failed to decode bulk response: %w", err)
	}
	if bulk.Errors {
		return fmt.Errorf("bulk indexing reported item errors")
	}

	slog.Info("Indexed shows", "index", c.config.Index, "count", len(docs))
	return nil
}

// maxResultWindow - index.max_result_window по умолчанию
const maxResultWindow = 10000

// resultOffset считает from для страницы, не выходя за maxResultWindow.
// Сравнение идёт до умножения, чтобы (page-1)*pageSize не переполнился.
func resultOffset(page, pageSize int) (int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize > maxResultWindow || page-1 > (maxResultWindow-pageSize)/pageSize {
		return 0, fmt.Errorf("page %d is beyond the result window", page)
	}
	return (page - 1) * pageSize, nil
}

// Search ищет шоу по городу, площадке или стране с фильтром по региону
func (c *ElasticsearchClient) Search(ctx context.Context, query, region string, page, pageSize int) (models.SearchShowsResponse, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	from, err := resultOffset(page, pageSize)
	if err != nil {
		return models.SearchShowsResponse{}, err
	}

	body, err := json.Marshal(map[string]any{
		"query":            buildSearchQuery(query, region),
		"sort":             buildSortQuery(query),
		"from":             from,
		"size":             pageSize,
		"track_total_hits": true,
	})
	if err != nil {
		return models.SearchShowsResponse{}, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := esapi.SearchRequest{
		Index: []string{c.config.Index},
		Body:  bytes.NewReader(body),
	}.Do(ctx, c.client)
	if err != nil {
		return models.SearchShowsResponse{}, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return models.SearchShowsResponse{}, fmt.Errorf("search error: %s", res.String())
	}

	var response struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.ShowDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return models.SearchShowsResponse{}, fmt.Errorf("failed to decode search response: %w", err)
	}

	out := models.SearchShowsResponse{
		Shows: make([]models.ShowDocument, len(response.Hits.Hits)),
		Total: response.Hits.Total.Value,
	}
	for i, hit := range response.Hits.Hits {
		out.Shows[i] = hit.Source
	}
	return out, nil
}

func buildSearchQuery(query, region string) map[string]any {
	var must []map[string]any
	if q := strings.TrimSpace(query); q != "" {
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"city^3", "venue^2", "country", "address"},
				"fuzziness": "AUTO",
			},
		})
	}

	var filter []map[string]any
	if region != "" {
		filter = append(filter, map[string]any{"term": map[string]any{"region": region}})
	}

	if len(must) == 0 && len(filter) == 0 {
		return map[string]any{"match_all": map[string]any{}}
	}

	b := map[string]any{}
	if len(must) > 0 {
		b["must"] = must
	}
	if len(filter) > 0 {
		b["filter"] = filter
	}
	return map[string]any{"bool": b}
}

func buildSortQuery(query string) []map[string]any {
	if strings.TrimSpace(query) != "" {
		return []map[string]any{
			{"_score": map[string]any{"order": "desc"}},
			{"id": map[string]any{"order": "asc"}},
		}
	}
	return []map[string]any{
		{"id": map[string]any{"order": "asc"}},
	}
}
