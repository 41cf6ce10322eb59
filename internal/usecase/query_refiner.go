package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"uvg-agent/internal/domain"
)

const (
	refineMaxTokens = 100
	refineCacheSize = 256
)

// QueryRefiner rewrites a conversational question into a compact keyword
// query using a deterministic completion call. Rewrites are memoized: the
// call runs at temperature 0, so a repeat question can skip the round trip.
type QueryRefiner struct {
	llm    domain.CompletionClient
	cache  *lru.Cache[string, string]
	logger *slog.Logger
}

// NewQueryRefiner constructs a refiner around the given completion client.
func NewQueryRefiner(llm domain.CompletionClient, logger *slog.Logger) *QueryRefiner {
	cache, _ := lru.New[string, string](refineCacheSize)
	return &QueryRefiner{
		llm:    llm,
		cache:  cache,
		logger: logger,
	}
}

// Refine returns the keyword rewrite of question. An empty model output
// falls back to the original question so refinement can never zero out
// recall; a failed call propagates as a generation backend error.
func (r *QueryRefiner) Refine(ctx context.Context, question string) (string, error) {
	key := strings.TrimSpace(question)
	if cached, ok := r.cache.Get(key); ok {
		r.logger.Debug("query_refine_cache_hit", slog.String("query", truncateForLog(key, 100)))
		return cached, nil
	}

	resp, err := r.llm.Complete(ctx, domain.CompletionRequest{
		MaxTokens:   refineMaxTokens,
		Temperature: 0.0,
		System:      refineSystemPrompt,
		Messages: []domain.Message{
			{Role: "user", Content: buildRefinePrompt(question)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to refine query: %w", err)
	}

	refined := strings.TrimSpace(resp.Text())
	refined = strings.Trim(refined, `"'`)
	refined = strings.TrimSpace(refined)

	if refined == "" {
		r.logger.Warn("query_refine_empty", slog.String("query", truncateForLog(key, 100)))
		return question, nil
	}

	r.logger.Info("query_refine_completed",
		slog.String("query", truncateForLog(key, 100)),
		slog.String("refined", truncateForLog(refined, 100)))

	r.cache.Add(key, refined)
	return refined, nil
}

func truncateForLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
