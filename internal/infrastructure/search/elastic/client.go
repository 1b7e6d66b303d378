// Package elastic adapts the search contract to an Elasticsearch-style
// HTTP backend: documents live in one index, queries compile to the
// bool/function_score DSL and scoring functions become painless
// scripts evaluated index-side.
package elastic

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/ports/outbound"
	"github.com/pantrychef/v1/internal/search"
)

// Config holds connection settings for the search backend.
type Config struct {
	BaseURL  string
	Index    string
	Username string
	Password string
	Timeout  time.Duration
}

// Client talks to the backend over HTTP with a bounded timeout and no
// automatic retry; retry policy belongs to the caller.
type Client struct {
	http   *resty.Client
	index  string
	logger *zap.Logger
}

// NewClient creates a new search backend client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	if cfg.Username != "" {
		httpClient.SetBasicAuth(cfg.Username, cfg.Password)
	}

	return &Client{
		http:   httpClient,
		index:  cfg.Index,
		logger: logger.Named("elastic"),
	}
}

var _ outbound.SearchIndex = (*Client)(nil)

// EnsureIndex creates the recipe index with its expected mapping if it
// does not exist yet. The name field carries a keyword sub-field for
// exact-match collapse.
func (c *Client) EnsureIndex(ctx context.Context) error {
	head, err := c.http.R().SetContext(ctx).Head(fmt.Sprintf("/%s", c.index))
	if err != nil {
		return fmt.Errorf("%w: %v", search.ErrBackendUnavailable, err)
	}
	if head.StatusCode() == 200 {
		return nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(indexMapping()).
		Put(fmt.Sprintf("/%s", c.index))
	if err != nil {
		return fmt.Errorf("%w: %v", search.ErrBackendUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: create index: %s", search.ErrBackendUnavailable, resp.Status())
	}

	c.logger.Info("Search index created", zap.String("index", c.index))
	return nil
}

// Index writes or overwrites the document for a recipe.
func (c *Client) Index(ctx context.Context, doc search.RecipeDocument) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(doc).
		Put(fmt.Sprintf("/%s/_doc/%s", c.index, doc.ID))
	if err != nil {
		return fmt.Errorf("%w: %v", search.ErrBackendUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: index document: %s", search.ErrBackendUnavailable, resp.Status())
	}
	return nil
}

// Remove deletes the document for a recipe; a missing document is fine.
func (c *Client) Remove(ctx context.Context, recipeID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/%s/_doc/%s", c.index, recipeID))
	if err != nil {
		return fmt.Errorf("%w: %v", search.ErrBackendUnavailable, err)
	}
	if resp.IsError() && resp.StatusCode() != 404 {
		return fmt.Errorf("%w: remove document: %s", search.ErrBackendUnavailable, resp.Status())
	}
	return nil
}

// searchResponse is the subset of the backend's answer we consume.
type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Score  float64               `json:"_score"`
			Source search.RecipeDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search compiles and executes one compound query. 4xx answers mean
// the compiled query itself was rejected; anything else that keeps us
// from an answer is backend unavailability.
func (c *Client) Search(ctx context.Context, query search.Query) (*search.Result, error) {
	body, err := CompileQuery(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrInvalidQuery, err)
	}

	var parsed searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&parsed).
		Post(fmt.Sprintf("/%s/_search", c.index))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrBackendUnavailable, err)
	}

	switch {
	case resp.StatusCode() >= 400 && resp.StatusCode() < 500:
		c.logger.Error("Search backend rejected query",
			zap.Int("status", resp.StatusCode()),
			zap.ByteString("response", resp.Body()),
		)
		return nil, fmt.Errorf("%w: %s", search.ErrInvalidQuery, resp.Status())
	case resp.IsError():
		return nil, fmt.Errorf("%w: %s", search.ErrBackendUnavailable, resp.Status())
	}

	hits := make([]search.Hit, len(parsed.Hits.Hits))
	for i, h := range parsed.Hits.Hits {
		hits[i] = search.Hit{Document: h.Source, Score: h.Score}
	}

	return &search.Result{Total: parsed.Hits.Total.Value, Hits: hits}, nil
}

// indexMapping is the bit-exact field set the orchestrator expects.
func indexMapping() map[string]any {
	return map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"id": map[string]any{"type": "keyword"},
				"name": map[string]any{
					"type": "text",
					"fields": map[string]any{
						"keyword": map[string]any{"type": "keyword"},
					},
				},
				"description":      map[string]any{"type": "text"},
				"categories":       map[string]any{"type": "text"},
				"ingredientsCount": map[string]any{"type": "integer"},
				"ingredients": map[string]any{
					"type": "nested",
					"properties": map[string]any{
						"id":                 map[string]any{"type": "keyword"},
						"name":               map[string]any{"type": "text"},
						"quantity":           map[string]any{"type": "double"},
						"unit":               map[string]any{"type": "keyword"},
						"productId":          map[string]any{"type": "keyword"},
						"normalizedQuantity": map[string]any{"type": "double"},
						"baseUnitFamily":     map[string]any{"type": "keyword"},
					},
				},
			},
		},
	}
}
