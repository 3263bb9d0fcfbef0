package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/config"
)

// IndexClient talks to the OpenSearch data plane: kNN index lifecycle,
// document ingestion and vector search.
type IndexClient struct {
	baseURL  string
	username string
	password string
	client   *http.Client
}

// Document is one knowledge-base entry indexed for retrieval
type Document struct {
	SourceKey string    `json:"source_key"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
}

// Hit is one retrieval result
type Hit struct {
	SourceKey string  `json:"source_key"`
	Text      string  `json:"text"`
	Score     float64 `json:"score"`
}

// NewIndexClient creates a data-plane client from config
func NewIndexClient(cfg *config.SearchConfig) *IndexClient {
	return &IndexClient{
		baseURL:  cfg.DataEndpoint,
		username: cfg.Username,
		password: cfg.Password,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *IndexClient) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("opensearch returned status %d for %s %s", resp.StatusCode, method, path)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// CreateVectorIndex creates a kNN index with the given embedding dimension.
// Idempotent from the caller's perspective: a 400 from an already-existing
// index is surfaced as an error and the provisioner treats Create as
// deploy-time-only.
func (c *IndexClient) CreateVectorIndex(ctx context.Context, index string, dimension int) error {
	payload := map[string]interface{}{
		"settings": map[string]interface{}{
			"index": map[string]interface{}{
				"knn": true,
			},
		},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"embedding": map[string]interface{}{
					"type":      "knn_vector",
					"dimension": dimension,
				},
				"text":       map[string]interface{}{"type": "text"},
				"source_key": map[string]interface{}{"type": "keyword"},
			},
		},
	}
	return c.do(ctx, "PUT", "/"+index, payload, nil)
}

// DeleteIndex removes the index
func (c *IndexClient) DeleteIndex(ctx context.Context, index string) error {
	return c.do(ctx, "DELETE", "/"+index, nil, nil)
}

// IndexDocument upserts one document under a deterministic id so repeated
// ingestion of the same storage key overwrites instead of accumulating.
func (c *IndexClient) IndexDocument(ctx context.Context, index, docID string, doc Document) error {
	return c.do(ctx, "PUT", fmt.Sprintf("/%s/_doc/%s", index, docID), doc, nil)
}

type knnSearchResponse struct {
	Hits struct {
		Hits []struct {
			Score  float64  `json:"_score"`
			Source Document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs a kNN query and returns the top-k hits
func (c *IndexClient) Search(ctx context.Context, index string, vector []float32, k int) ([]Hit, error) {
	payload := map[string]interface{}{
		"size": k,
		"query": map[string]interface{}{
			"knn": map[string]interface{}{
				"embedding": map[string]interface{}{
					"vector": vector,
					"k":      k,
				},
			},
		},
	}

	var resp knnSearchResponse
	if err := c.do(ctx, "POST", fmt.Sprintf("/%s/_search", index), payload, &resp); err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(resp.Hits.Hits))
	for _, h := range resp.Hits.Hits {
		hits = append(hits, Hit{
			SourceKey: h.Source.SourceKey,
			Text:      h.Source.Text,
			Score:     h.Score,
		})
	}
	return hits, nil
}
