// Package openrouter is a minimal client for the OpenRouter chat completions
// and model listing APIs.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Realcryptoplato/llm-council/internal/metrics"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DefaultTimeout bounds a single completion request end to end.
	DefaultTimeout = 120 * time.Second

	// DefaultMaxTokens caps the completion length requested from every model.
	DefaultMaxTokens = 4096
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// HTTPClient is the interface for making HTTP requests, satisfied by
// *http.Client and mockable in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	BaseURL    string
	APIKey     string
	MaxTokens  int
	HTTPClient HTTPClient
	log        *slog.Logger
}

// Message is a single chat message in OpenAI wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Model describes one entry from the OpenRouter model catalog.
type Model struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Created int64        `json:"created"`
	Pricing ModelPricing `json:"pricing"`
}

type ModelPricing struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

type modelsResponse struct {
	Data []Model `json:"data"`
}

type ClientConfig struct {
	BaseURL   string
	APIKey    string
	MaxTokens int

	// Timeout bounds each request end to end when no HTTPClient is given.
	// Callers enforcing per-request context deadlines must keep this above
	// them or the transport cuts the request off first.
	Timeout    time.Duration
	HTTPClient HTTPClient
}

// NewClient builds a client from the OPENROUTER_API_KEY and optional
// OPENROUTER_API_URL environment variables.
func NewClient(log *slog.Logger) *Client {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" && log != nil {
		log.Warn("OPENROUTER_API_KEY is not set; requests will be rejected")
	}

	return NewClientWithConfig(log, ClientConfig{
		BaseURL: os.Getenv("OPENROUTER_API_URL"),
		APIKey:  apiKey,
	})
}

func NewClientWithConfig(logger *slog.Logger, config ClientConfig) *Client {
	// Set defaults if not provided
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = DefaultMaxTokens
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{
			Timeout: config.Timeout,
		}
	}

	return &Client{
		BaseURL:    config.BaseURL,
		APIKey:     config.APIKey,
		MaxTokens:  config.MaxTokens,
		HTTPClient: config.HTTPClient,
		log:        logger,
	}
}

func (c *Client) setCommonHeaders(req *http.Request) {
	if c.APIKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	} else if c.log != nil {
		c.log.Warn("No API key configured for OpenRouter API")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "llm-council/1.0")
}

// ChatCompletion sends a single chat completion request and returns the
// content of the first choice. It makes exactly one attempt; callers own
// any retry or fallback policy. An empty content string on a successful
// response is returned as-is, not as an error.
func (c *Client) ChatCompletion(ctx context.Context, model string, messages []Message) (string, error) {
	requestJSON, err := json.Marshal(chatRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: c.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	url := c.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	c.setCommonHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		metrics.APIErrorsTotal.WithLabelValues("chat_completion").Inc()
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	responseBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.APIErrorsTotal.WithLabelValues("chat_completion_status").Inc()
		return "", fmt.Errorf("chat completion failed with status %d: %s", resp.StatusCode, string(responseBytes))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(responseBytes, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal chat response: %w", err)
	}
	if chatResp.Error != nil {
		metrics.APIErrorsTotal.WithLabelValues("chat_completion").Inc()
		return "", fmt.Errorf("chat completion failed: %s (code %d)", chatResp.Error.Message, chatResp.Error.Code)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices for model %s", model)
	}

	return chatResp.Choices[0].Message.Content, nil
}

// ListModels fetches the full model catalog from OpenRouter.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	url := c.BaseURL + "/models"
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setCommonHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		metrics.APIErrorsTotal.WithLabelValues("list_models").Inc()
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.APIErrorsTotal.WithLabelValues("list_models_status").Inc()
		return nil, fmt.Errorf("model listing failed with status: %d", resp.StatusCode)
	}

	var response modelsResponse
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return response.Data, nil
}
