package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"uvg-agent/internal/domain"
	"uvg-agent/internal/infra/httpclient"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
)

type messagesRequest struct {
	Model       string           `json:"model"`
	MaxTokens   int              `json:"max_tokens"`
	Temperature float64          `json:"temperature"`
	System      string           `json:"system,omitempty"`
	Messages    []domain.Message `json:"messages"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Client sends prompts to the Anthropic messages endpoint. Outbound calls
// share a limiter so a burst of questions cannot trip upstream rate limits.
type Client struct {
	BaseURL string
	Model   string
	Client  *http.Client

	apiKey  string
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient constructs a completion client for the given model.
// requestsPerMinute <= 0 disables pacing.
func NewClient(baseURL, apiKey, model string, timeout time.Duration, requestsPerMinute int, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), requestsPerMinute)
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		Client:  httpclient.NewPooledClient(timeout),
		apiKey:  apiKey,
		limiter: limiter,
		logger:  logger,
	}
}

// Complete sends one messages call and decodes the content parts into the
// tagged domain variants. Non-text parts are kept but carry no text.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (*domain.CompletionResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("completion rate limit wait: %w", err)
	}

	startTime := time.Now()

	reqBody := messagesRequest{
		Model:       c.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		System:      req.System,
		Messages:    req.Messages,
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/messages", c.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		c.logger.Warn("completion_failed",
			slog.String("error", err.Error()),
			slog.Int64("elapsed_ms", time.Since(startTime).Milliseconds()))
		return nil, fmt.Errorf("failed to call completion endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("completion_failed",
			slog.Int("status_code", resp.StatusCode),
			slog.String("body", truncateString(string(body), 500)),
			slog.Int64("elapsed_ms", time.Since(startTime).Milliseconds()))
		return nil, fmt.Errorf("completion endpoint returned %d: %s", resp.StatusCode, truncateString(string(body), 500))
	}

	var msgResp messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&msgResp); err != nil {
		return nil, fmt.Errorf("failed to decode completion response: %w", err)
	}

	parts := make([]domain.ContentPart, 0, len(msgResp.Content))
	for _, block := range msgResp.Content {
		if block.Type == "text" {
			parts = append(parts, domain.ContentPart{Kind: domain.ContentKindText, Text: block.Text})
			continue
		}
		parts = append(parts, domain.ContentPart{Kind: domain.ContentKindOther})
	}

	c.logger.Info("completion_completed",
		slog.Int("parts", len(parts)),
		slog.Int64("elapsed_ms", time.Since(startTime).Milliseconds()))

	return &domain.CompletionResponse{Parts: parts}, nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

var _ domain.CompletionClient = (*Client)(nil)
