package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/config"
)

// GroqClient is a minimal client for Groq API calls used for LLM work
// (invitation parsing, diarization naming, transcript cleaning, summaries)
// and for embedding knowledge-base documents.
type GroqClient struct {
	apiKey         string
	baseURL        string
	chatModel      string
	embeddingModel string
	client         *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	var apiKey, base, chatModel, embeddingModel string
	if cfg != nil {
		apiKey = cfg.APIKey
		base = cfg.BaseURL
		chatModel = cfg.ChatModel
		embeddingModel = cfg.EmbeddingModel
	}
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}
	if base == "" {
		base = os.Getenv("GROQ_API_URL")
		if base == "" {
			base = "https://api.groq.com"
		}
	}
	if chatModel == "" {
		chatModel = "llama-3.1-70b-versatile"
	}
	if embeddingModel == "" {
		embeddingModel = "nomic-embed-text-v1.5"
	}

	return &GroqClient{
		apiKey:         apiKey,
		baseURL:        base,
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		client:         &http.Client{Timeout: 120 * time.Second},
	}
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string      `json:"model,omitempty"`
	Messages    interface{} `json:"messages,omitempty"`
	Temperature float64     `json:"temperature"`
	MaxTokens   int         `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a single-turn prompt and returns the assistant content.
// Temperature is pinned to 0 so extraction prompts stay deterministic.
func (g *GroqClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	reqBody := ChatRequest{
		Model:       g.chatModel,
		Messages:    []map[string]string{{"role": "user", "content": prompt}},
		Temperature: 0,
		MaxTokens:   maxTokens,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}
	return cr.Choices[0].Message.Content, nil
}

// EmbeddingRequest is the shape for embedding requests
type EmbeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

// EmbeddingResponse is a minimal response shape
type EmbeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed returns the embedding vector for the given text
func (g *GroqClient) Embed(ctx context.Context, input string) ([]float32, error) {
	b, err := json.Marshal(EmbeddingRequest{Model: g.embeddingModel, Input: input})
	if err != nil {
		return nil, err
	}

	endpoint := g.baseURL + "/openai/v1/embeddings"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	var er EmbeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, err
	}
	if len(er.Data) == 0 {
		return nil, fmt.Errorf("empty embedding response from groq")
	}
	return er.Data[0].Embedding, nil
}
