package telephony

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/config"
)

// CreateCallRequest asks the voice connector to place one outbound call
// through a SIP media application. Field casing follows the platform's API.
type CreateCallRequest struct {
	FromPhoneNumber       string            `json:"FromPhoneNumber"`
	ToPhoneNumber         string            `json:"ToPhoneNumber"`
	SipMediaApplicationID string            `json:"SipMediaApplicationId"`
	ArgumentsMap          map[string]string `json:"ArgumentsMap,omitempty"`
}

// CreateCallResponse identifies the placed call
type CreateCallResponse struct {
	TransactionID string `json:"TransactionId"`
}

// Client talks to the SIP voice connector REST API
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a voice connector client from config
func NewClient(cfg *config.TelephonyConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateSipMediaApplicationCall places one outbound call. The platform then
// drives the call by posting lifecycle events to our call-control webhook.
func (c *Client) CreateSipMediaApplicationCall(ctx context.Context, req CreateCallRequest) (*CreateCallResponse, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/sip-media-applications/%s/calls", c.baseURL, req.SipMediaApplicationID)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("voice connector returned status %d", resp.StatusCode)
	}

	var out CreateCallResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
