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

// ServerlessClient talks to the vector collection control plane: collection
// lifecycle plus the access/network/encryption policies gating it. Used only
// at provisioning time, never on a request path.
type ServerlessClient struct {
	baseURL  string
	username string
	password string
	client   *http.Client
}

// Collection describes a provisioned vector collection
type Collection struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	ARN                string `json:"arn"`
	Status             string `json:"status"`
	CollectionEndpoint string `json:"collectionEndpoint"`
}

// CollectionStatusActive is the status a collection must reach before index
// creation can proceed.
const CollectionStatusActive = "ACTIVE"

// NewServerlessClient creates a control-plane client from config
func NewServerlessClient(cfg *config.SearchConfig) *ServerlessClient {
	return &ServerlessClient{
		baseURL:  cfg.ControlEndpoint,
		username: cfg.Username,
		password: cfg.Password,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *ServerlessClient) do(ctx context.Context, method, path string, payload, out interface{}) error {
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
		return fmt.Errorf("control plane returned status %d for %s %s", resp.StatusCode, method, path)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// CreateAccessPolicy grants the knowledge-base role access to the collection
func (c *ServerlessClient) CreateAccessPolicy(ctx context.Context, name string, principalARNs []string) error {
	payload := map[string]interface{}{
		"name":       name,
		"type":       "data",
		"principals": principalARNs,
	}
	return c.do(ctx, "POST", "/access-policies", payload, nil)
}

// DeleteAccessPolicy removes the named access policy
func (c *ServerlessClient) DeleteAccessPolicy(ctx context.Context, name string) error {
	return c.do(ctx, "DELETE", "/access-policies/"+name, nil, nil)
}

// CreateSecurityPolicy creates a network or encryption security policy
func (c *ServerlessClient) CreateSecurityPolicy(ctx context.Context, name, policyType string) error {
	payload := map[string]interface{}{
		"name": name,
		"type": policyType,
	}
	return c.do(ctx, "POST", "/security-policies", payload, nil)
}

// DeleteSecurityPolicy removes the named security policy of the given type
func (c *ServerlessClient) DeleteSecurityPolicy(ctx context.Context, name, policyType string) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/security-policies/%s/%s", policyType, name), nil, nil)
}

// CreateCollection provisions a vector collection; the returned collection is
// usually still CREATING and must be polled via GetCollection.
func (c *ServerlessClient) CreateCollection(ctx context.Context, name string) (*Collection, error) {
	payload := map[string]interface{}{
		"name": name,
		"type": "VECTORSEARCH",
	}
	var out Collection
	if err := c.do(ctx, "POST", "/collections", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCollection reads the named collection's current state
func (c *ServerlessClient) GetCollection(ctx context.Context, name string) (*Collection, error) {
	var out Collection
	if err := c.do(ctx, "GET", "/collections/"+name, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCollection removes the named collection
func (c *ServerlessClient) DeleteCollection(ctx context.Context, name string) error {
	return c.do(ctx, "DELETE", "/collections/"+name, nil, nil)
}
