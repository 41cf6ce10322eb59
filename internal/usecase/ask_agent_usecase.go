package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"uvg-agent/internal/domain"
)

// Defaults for the tuning parameters of one orchestration run.
const (
	DefaultSize      = 30
	DefaultMaxChunks = 20
)

// AskInput carries one question plus its retrieval tuning parameters.
type AskInput struct {
	Question    string
	Size        int
	MaxChunks   int
	UseSemantic bool
	MinScore    float64
}

// AskOutput is the result of one orchestration run: the answer, the
// normalized citations, and the raw search payload passed through for the
// caller.
type AskOutput struct {
	Answer       string
	Sources      []domain.Source
	SearchResult *domain.SearchResult
}

// AskAgentUsecase answers natural-language questions about the university
// by combining hosted search with hosted generation.
type AskAgentUsecase interface {
	Execute(ctx context.Context, input AskInput) (*AskOutput, error)
}

type askAgentUsecase struct {
	refiner   *QueryRefiner
	search    domain.SearchClient
	generator *AnswerGenerator
	extractor *SourceExtractor
	logger    *slog.Logger
}

// NewAskAgentUsecase wires the pipeline steps together.
func NewAskAgentUsecase(
	refiner *QueryRefiner,
	search domain.SearchClient,
	generator *AnswerGenerator,
	extractor *SourceExtractor,
	logger *slog.Logger,
) AskAgentUsecase {
	return &askAgentUsecase{
		refiner:   refiner,
		search:    search,
		generator: generator,
		extractor: extractor,
		logger:    logger,
	}
}

// Execute runs the sequential pipeline: classify, refine, search, build
// context, generate, extract sources. Greetings and empty questions
// terminate before any outbound call. External-call failures propagate
// immediately; nothing is retried.
func (u *askAgentUsecase) Execute(ctx context.Context, input AskInput) (*AskOutput, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return &AskOutput{
			Answer:       emptyQuestionReply,
			Sources:      []domain.Source{},
			SearchResult: &domain.SearchResult{},
		}, nil
	}

	if intent := ClassifyIntent(question); intent == IntentGreeting {
		u.logger.Info("ask_short_circuit", slog.String("intent", string(intent)))
		return &AskOutput{
			Answer:       SmalltalkReply(),
			Sources:      []domain.Source{},
			SearchResult: &domain.SearchResult{},
		}, nil
	}

	size := input.Size
	if size <= 0 {
		size = DefaultSize
	}
	maxChunks := input.MaxChunks
	if maxChunks <= 0 {
		maxChunks = DefaultMaxChunks
	}

	requestID := uuid.NewString()
	log := u.logger.With(slog.String("request_id", requestID))

	refined, err := u.refiner.Refine(ctx, question)
	if err != nil {
		return nil, err
	}

	features := []string{domain.FeatureKeyword}
	if input.UseSemantic {
		features = append(features, domain.FeatureSemantic)
	}

	// A zero threshold means "no minimum"; it is not forwarded so the
	// backend never sees an explicit filter it could interpret.
	var minScore *float64
	if input.MinScore > 0 {
		minScore = &input.MinScore
	}

	result, err := u.search.Search(ctx, domain.SearchRequest{
		Query:    refined,
		Size:     size,
		Features: features,
		MinScore: minScore,
	})
	if err != nil {
		return nil, err
	}

	contextBlock := BuildContext(result, maxChunks, true, input.MinScore)
	if contextBlock == "" {
		log.Info("ask_no_context", slog.Int("hits", len(result.Paragraphs.Results)))
	}

	answer, err := u.generator.Generate(ctx, question, contextBlock)
	if err != nil {
		return nil, err
	}

	sources := u.extractor.Extract(result, maxChunks, input.MinScore)

	log.Info("ask_completed",
		slog.Int("sources", len(sources)),
		slog.Int("answer_len", len(answer)))

	return &AskOutput{
		Answer:       answer,
		Sources:      sources,
		SearchResult: result,
	}, nil
}
