package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"uvg-agent/internal/adapter/agent_http"
	"uvg-agent/internal/adapter/anthropic"
	"uvg-agent/internal/adapter/nuclia"
	"uvg-agent/internal/infra/config"
	"uvg-agent/internal/infra/logger"
	"uvg-agent/internal/usecase"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.NewWithOTel(cfg.OTelEnabled)
	slog.SetDefault(log)

	if cfg.NucliaAPIBase == "" || cfg.KB == "" {
		log.Error("NUCLIA_API_BASE and KB are required")
		os.Exit(1)
	}

	// 3. Initialize Adapters
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

	// 4. Initialize Usecases
	refiner := usecase.NewQueryRefiner(llmClient, log)
	generator := usecase.NewAnswerGenerator(llmClient, cfg.Instructions, cfg.MaxTokens, cfg.Temperature, log)
	extractor := usecase.NewSourceExtractor(cfg.NucliaAPIBase, cfg.KB)
	askUsecase := usecase.NewAskAgentUsecase(refiner, searchClient, generator, extractor, log)

	// 5. Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.FrontOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
	}))

	// 6. Routes
	handler := agent_http.NewHandler(askUsecase, cfg.ClaudeModel, cfg.KB)
	e.POST("/ask", handler.Ask)
	e.GET("/health", handler.Health)

	// 7. Start Server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info("Starting server", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	// 8. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
