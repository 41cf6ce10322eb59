package nuclia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"uvg-agent/internal/domain"
	"uvg-agent/internal/infra/httpclient"
)

// DefaultVectorset is attached whenever semantic search is requested and the
// caller did not pick a vector set.
const DefaultVectorset = "multilingual-2024-05-06"

// maxErrorBodyBytes bounds how much of an upstream error body is carried in
// the returned error.
const maxErrorBodyBytes = 800

// Client talks to the hosted search service for a single knowledge base.
type Client struct {
	BaseURL string
	KB      string
	Client  *http.Client

	headers http.Header
	logger  *slog.Logger
}

// NewClient builds a search client. The auth header scheme depends on the
// base URL: the managed cloud endpoints expect x-api-key, self-hosted
// deployments expect a bearer token.
func NewClient(baseURL, kb, token string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		KB:      kb,
		Client:  httpclient.NewPooledClient(timeout),
		headers: buildHeaders(baseURL, token),
		logger:  logger,
	}
}

func buildHeaders(baseURL, token string) http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("Content-Type", "application/json")

	base := strings.ToLower(baseURL)
	if strings.Contains(base, "rag.progress.cloud") || strings.Contains(base, "nuclia.cloud") {
		h.Set("x-api-key", token)
	} else {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// Search runs one hybrid search call. Any non-2xx status or transport
// failure is a hard error; no retries.
func (c *Client) Search(ctx context.Context, sr domain.SearchRequest) (*domain.SearchResult, error) {
	startTime := time.Now()

	features := sr.Features
	if len(features) == 0 {
		features = []string{domain.FeatureKeyword, domain.FeatureSemantic}
	}

	params := url.Values{}
	params.Set("query", sr.Query)
	params.Set("size", strconv.Itoa(sr.Size))
	for _, f := range features {
		params.Add("features", f)
	}

	if hasFeature(features, domain.FeatureSemantic) {
		vectorset := sr.Vectorset
		if vectorset == "" {
			vectorset = DefaultVectorset
		}
		params.Set("vectorset", vectorset)
	}

	for _, f := range sr.Filters {
		params.Add("filters", f)
	}
	for _, f := range sr.Faceted {
		params.Add("faceted", f)
	}
	if sr.Sort != "" {
		params.Set("sort", sr.Sort)
	}
	if sr.MinScore != nil {
		params.Set("min_score", strconv.FormatFloat(*sr.MinScore, 'f', -1, 64))
	}

	endpoint := fmt.Sprintf("%s/kb/%s/search?%s", c.BaseURL, c.KB, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}

	c.logger.Info("search_started",
		slog.String("query", truncateString(sr.Query, 100)),
		slog.Int("size", sr.Size),
		slog.Any("features", features))

	resp, err := c.Client.Do(req)
	if err != nil {
		c.logger.Warn("search_failed",
			slog.String("error", err.Error()),
			slog.Int64("elapsed_ms", time.Since(startTime).Milliseconds()))
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("search_failed",
			slog.Int("status_code", resp.StatusCode),
			slog.String("body", truncateString(string(body), 500)),
			slog.Int64("elapsed_ms", time.Since(startTime).Milliseconds()))
		return nil, &domain.SearchBackendError{
			Status: resp.StatusCode,
			Body:   truncateString(string(body), maxErrorBodyBytes),
		}
	}

	var result domain.SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	result.Raw = json.RawMessage(body)

	c.logger.Info("search_completed",
		slog.Int("paragraphs", len(result.Paragraphs.Results)),
		slog.Int("resources", len(result.Resources)),
		slog.Int64("elapsed_ms", time.Since(startTime).Milliseconds()))

	return &result, nil
}

func hasFeature(features []string, want string) bool {
	for _, f := range features {
		if f == want {
			return true
		}
	}
	return false
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

var _ domain.SearchClient = (*Client)(nil)
