package ai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/config"
)

// AssemblyAIClient is a minimal AssemblyAI client used where the official SDK
// is inconvenient: fetching a completed transcript as raw JSON so it can be
// archived verbatim in the transcribe-output prefix.
type AssemblyAIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	var apiKey, base string
	if cfg != nil {
		apiKey = cfg.APIKey
		base = cfg.BaseURL
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	if base == "" {
		base = "https://api.assemblyai.com"
	}
	return &AssemblyAIClient{
		apiKey:  apiKey,
		baseURL: base,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// GetTranscriptJSON fetches the completed transcript by id as raw JSON bytes
func (c *AssemblyAIClient) GetTranscriptJSON(ctx context.Context, transcriptID string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/v2/transcript/%s", c.baseURL, transcriptID)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("assemblyai returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
