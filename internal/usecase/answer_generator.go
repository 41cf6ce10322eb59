package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"uvg-agent/internal/domain"
)

const (
	reformatMaxTokens = 600
	// minUsefulAnswerRunes guards against a degenerate answer when no
	// context was available to ground on.
	minUsefulAnswerRunes = 20
)

// highStakesKeywords mark questions where a wrong or unstructured answer is
// costly; such answers must carry the mandated Markdown sections.
var highStakesKeywords = []string{
	"requisito", "costo", "beca", "calendario", "plan", "malla", "proceso",
}

// requiredSections are the structural markers the self-check looks for.
var requiredSections = []string{
	"# Respuesta", "## Detalles", "## Siguientes pasos",
}

// AnswerGenerator produces the grounded answer and runs the structural
// self-check over it.
type AnswerGenerator struct {
	llm          domain.CompletionClient
	instructions string
	maxTokens    int
	temperature  float64
	logger       *slog.Logger
}

// NewAnswerGenerator constructs a generator. instructions is the fixed
// persona/policy document, treated as opaque configuration.
func NewAnswerGenerator(llm domain.CompletionClient, instructions string, maxTokens int, temperature float64, logger *slog.Logger) *AnswerGenerator {
	return &AnswerGenerator{
		llm:          llm,
		instructions: instructions,
		maxTokens:    maxTokens,
		temperature:  temperature,
		logger:       logger,
	}
}

// Generate answers the question against the assembled context. An empty
// context is stated explicitly in the prompt rather than left blank. After
// generation, a high-stakes question whose answer misses any required
// section triggers one strict reformat call; if that call fails or returns
// nothing, the original answer survives. Finally, with no context and an
// empty or too-terse answer, a canned guidance message is returned instead.
func (g *AnswerGenerator) Generate(ctx context.Context, question, contextBlock string) (string, error) {
	noContext := strings.TrimSpace(contextBlock) == ""
	promptContext := contextBlock
	if noContext {
		promptContext = noContextMarker
	}

	resp, err := g.llm.Complete(ctx, domain.CompletionRequest{
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
		System:      g.instructions,
		Messages: []domain.Message{
			{Role: "user", Content: buildUserPrompt(question, promptContext)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	answer := strings.TrimSpace(resp.Text())

	if needsReformat(question, answer) {
		answer = g.reformat(ctx, answer)
	}

	if noContext && (answer == "" || utf8.RuneCountInString(answer) < minUsefulAnswerRunes) {
		g.logger.Info("answer_replaced_with_guidance", slog.Int("answer_len", len(answer)))
		answer = noContextGuidance
	}

	return answer, nil
}

// needsReformat reports whether the answer to a high-stakes question is
// missing any of the required section markers. An empty answer is never
// reformatted; there is nothing to restructure.
func needsReformat(question, answer string) bool {
	if answer == "" {
		return false
	}
	q := strings.ToLower(question)
	highStakes := false
	for _, kw := range highStakesKeywords {
		if strings.Contains(q, kw) {
			highStakes = true
			break
		}
	}
	if !highStakes {
		return false
	}
	for _, section := range requiredSections {
		if !strings.Contains(answer, section) {
			return true
		}
	}
	return false
}

// reformat asks the model to restructure the answer into the fixed schema.
// Any failure or empty result keeps the original answer; the self-check may
// never destroy a usable answer.
func (g *AnswerGenerator) reformat(ctx context.Context, answer string) string {
	maxTokens := reformatMaxTokens
	if g.maxTokens < maxTokens {
		maxTokens = g.maxTokens
	}

	resp, err := g.llm.Complete(ctx, domain.CompletionRequest{
		MaxTokens:   maxTokens,
		Temperature: 0.0,
		System:      reformatSystemPrompt,
		Messages: []domain.Message{
			{Role: "user", Content: buildReformatPrompt(answer)},
		},
	})
	if err != nil {
		g.logger.Warn("answer_reformat_failed", slog.String("error", err.Error()))
		return answer
	}

	reformatted := strings.TrimSpace(resp.Text())
	if reformatted == "" {
		g.logger.Warn("answer_reformat_empty")
		return answer
	}
	return reformatted
}
