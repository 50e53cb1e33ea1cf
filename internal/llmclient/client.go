package llmclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/a11yauditor/a11y-auditor/internal/config"
)

// UpstreamError reports a transport or HTTP failure calling the model
// service. Callers treat it the same as a parse failure: the audit falls
// back to the rule-based analyzer rather than failing.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API returned status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s API request failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client talks to an OpenAI-compatible chat-completions endpoint. The
// provider selects the base URL, auth header, and response envelope.
type Client struct {
	cfg        *config.LLMConfig
	httpClient *http.Client
	logger     *slog.Logger
}

func New(cfg *config.LLMConfig, logger *slog.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
		},
		logger: logger,
	}
}

// Complete sends a text-only prompt and returns the assistant text.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	messages := []map[string]any{
		{"role": "system", "content": system},
		{"role": "user", "content": prompt},
	}
	return c.chat(ctx, messages)
}

// CompleteVision sends a prompt together with screenshot bytes, embedded
// as base64 data URLs in multimodal content parts.
func (c *Client) CompleteVision(ctx context.Context, system, prompt string, images [][]byte) (string, error) {
	parts := []map[string]any{
		{"type": "text", "text": prompt},
	}
	for _, img := range images {
		parts = append(parts, map[string]any{
			"type": "image_url",
			"image_url": map[string]string{
				"url": "data:image/png;base64," + base64.StdEncoding.EncodeToString(img),
			},
		})
	}

	messages := []map[string]any{
		{"role": "system", "content": system},
		{"role": "user", "content": parts},
	}
	return c.chat(ctx, messages)
}

func (c *Client) chat(ctx context.Context, messages []map[string]any) (string, error) {
	if c.cfg.APIKey == "" {
		return "", &UpstreamError{Provider: c.provider(), Err: fmt.Errorf("no API key configured")}
	}

	reqBody := map[string]any{
		"model":       c.cfg.Model,
		"messages":    messages,
		"temperature": c.cfg.Temperature,
		"max_tokens":  c.cfg.MaxTokens,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", &UpstreamError{Provider: c.provider(), Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	apiURL := c.endpoint()
	c.logger.Debug("calling model API",
		"provider", c.provider(),
		"model", c.cfg.Model,
		"url", apiURL,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(jsonBody))
	if err != nil {
		return "", &UpstreamError{Provider: c.provider(), Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	switch c.provider() {
	case "anthropic":
		req.Header.Set("x-api-key", c.cfg.APIKey)
		req.Header.Set("anthropic-version", "2023-06-01")
	default:
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("model API request failed", "provider", c.provider(), "error", err)
		return "", &UpstreamError{Provider: c.provider(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{Provider: c.provider(), Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("model API error",
			"provider", c.provider(),
			"status_code", resp.StatusCode,
		)
		return "", &UpstreamError{Provider: c.provider(), StatusCode: resp.StatusCode}
	}

	text, err := c.extractText(body)
	if err != nil {
		return "", &UpstreamError{Provider: c.provider(), Err: err}
	}

	c.logger.Debug("model API response received",
		"provider", c.provider(),
		"response_length", len(text),
	)
	return text, nil
}

func (c *Client) provider() string {
	if c.cfg.Provider == "" {
		return "nvidia"
	}
	return c.cfg.Provider
}

func (c *Client) endpoint() string {
	if c.cfg.BaseURL != "" {
		base := c.cfg.BaseURL
		if c.provider() == "anthropic" {
			return base + "/v1/messages"
		}
		return base + "/chat/completions"
	}

	switch c.provider() {
	case "openai":
		return "https://api.openai.com/v1/chat/completions"
	case "openrouter":
		return "https://openrouter.ai/api/v1/chat/completions"
	case "anthropic":
		return "https://api.anthropic.com/v1/messages"
	default:
		return "https://integrate.api.nvidia.com/v1/chat/completions"
	}
}

// extractText decodes the provider response envelope down to the
// assistant text.
func (c *Client) extractText(body []byte) (string, error) {
	if c.provider() == "anthropic" {
		var resp struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to parse response envelope: %w", err)
		}
		if len(resp.Content) == 0 {
			return "", fmt.Errorf("empty response from model")
		}
		return resp.Content[0].Text, nil
	}

	// OpenAI-compatible envelope (openai, openrouter, nvidia).
	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse response envelope: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return resp.Choices[0].Message.Content, nil
}
