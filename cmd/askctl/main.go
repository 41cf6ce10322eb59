package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"uvg-agent/internal/adapter/anthropic"
	"uvg-agent/internal/adapter/nuclia"
	"uvg-agent/internal/infra/config"
	"uvg-agent/internal/usecase"
)

var (
	version = "dev"

	// Global flags
	verbose bool

	// Ask command flags
	size        int
	maxChunks   int
	useSemantic bool
	minScore    float64
	showSources bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "askctl",
	Short:   "Ask the UVG agent from a terminal",
	Version: version,
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Run one question through the answer pipeline",
	Long: `Run one question through the full pipeline (classify, refine,
search, generate) without going through the HTTP server.

Credentials and endpoints are read from the environment, same as the server.

Examples:
  # Ask about scholarships
  askctl ask "¿Qué becas ofrece la UVG?"

  # Tune retrieval
  askctl ask --size 50 --max-chunks 10 --min-score 0.4 "requisitos de admisión"

  # Keyword-only search
  askctl ask --semantic=false "calendario académico 2026"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	askCmd.Flags().IntVar(&size, "size", usecase.DefaultSize, "number of results to request from search")
	askCmd.Flags().IntVar(&maxChunks, "max-chunks", usecase.DefaultMaxChunks, "max passages fed into the context")
	askCmd.Flags().BoolVar(&useSemantic, "semantic", true, "enable semantic search in addition to keyword")
	askCmd.Flags().Float64Var(&minScore, "min-score", 0.0, "minimum relevance score (0.0-1.0)")
	askCmd.Flags().BoolVar(&showSources, "sources", true, "print the source list after the answer")

	rootCmd.AddCommand(askCmd)
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}

func runAsk(cmd *cobra.Command, args []string) error {
	log := newLogger()
	cfg := config.Load()

	if cfg.NucliaAPIBase == "" || cfg.KB == "" {
		return fmt.Errorf("NUCLIA_API_BASE and KB environment variables are required")
	}

	searchClient := nuclia.NewClient(
		cfg.NucliaAPIBase,
		cfg.KB,
		cfg.NucliaToken,
		time.Duration(cfg.SearchTimeoutSeconds)*time.Second,
		log,
	)
	llmClient := anthropic.NewClient(
		"",
		cfg.AnthropicKey,
		cfg.ClaudeModel,
		time.Duration(cfg.LLMTimeoutSeconds)*time.Second,
		cfg.LLMRequestsPerMinute,
		log,
	)

	refiner := usecase.NewQueryRefiner(llmClient, log)
	generator := usecase.NewAnswerGenerator(llmClient, cfg.Instructions, cfg.MaxTokens, cfg.Temperature, log)
	extractor := usecase.NewSourceExtractor(cfg.NucliaAPIBase, cfg.KB)
	ask := usecase.NewAskAgentUsecase(refiner, searchClient, generator, extractor, log)

	output, err := ask.Execute(cmd.Context(), usecase.AskInput{
		Question:    strings.Join(args, " "),
		Size:        size,
		MaxChunks:   maxChunks,
		UseSemantic: useSemantic,
		MinScore:    minScore,
	})
	if err != nil {
		return err
	}

	fmt.Println(output.Answer)

	if showSources && len(output.Sources) > 0 {
		fmt.Println()
		for _, src := range output.Sources {
			line := fmt.Sprintf("[%d] %s", src.ID, src.Title)
			if src.HasURL {
				line += fmt.Sprintf(" <%s>", src.URL)
			}
			if src.Score != nil {
				line += fmt.Sprintf(" (score %.3f)", *src.Score)
			}
			fmt.Println(line)
		}
	}

	return nil
}
