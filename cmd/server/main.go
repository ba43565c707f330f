// Package main is the entry point for the advisor trading recommendation service.
// It wires market data clients, the currency analyzer, the analysis pipeline and
// the HTTP API, then runs until interrupted.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/advisor/internal/clients/exchangerate"
	"github.com/aristath/advisor/internal/clients/llm"
	"github.com/aristath/advisor/internal/clients/yahoo"
	"github.com/aristath/advisor/internal/config"
	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/analysis"
	analysishandlers "github.com/aristath/advisor/internal/modules/analysis/handlers"
	"github.com/aristath/advisor/internal/modules/currency"
	currencyhandlers "github.com/aristath/advisor/internal/modules/currency/handlers"
	"github.com/aristath/advisor/internal/scheduler"
	"github.com/aristath/advisor/internal/server"
	"github.com/aristath/advisor/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting advisor")

	// Clients
	yahooClient := yahoo.NewClient(cfg.CacheTimeout, log)
	rateClient := exchangerate.NewClient(cfg.CacheTimeout, log)

	// The model path is optional: without an API key every recommendation
	// comes from the rule engine instead.
	var model domain.ModelCaller
	if cfg.ModelEnabled() {
		llmClient, err := llm.NewClient(llm.Config{
			APIKey:      cfg.AnthropicAPIKey,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			Timeout:     cfg.ModelTimeout,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create model client")
		}
		model = llmClient
		log.Info().Str("model", cfg.Model).Msg("Model-backed recommendations enabled")
	} else {
		log.Warn().Msg("ANTHROPIC_API_KEY not set - using rule-based recommendations only")
	}

	// Analysis pipeline
	currencyAnalyzer := currency.NewAnalyzer(rateClient, log)
	orchestrator := analysis.NewOrchestrator(currencyAnalyzer, model, log)
	analysisService := analysis.NewService(yahooClient, orchestrator, cfg.DefaultCurrency, log)

	// HTTP handlers
	analysisHandler := analysishandlers.NewHandler(analysisService, log)
	currencyHandler := currencyhandlers.NewHandler(currencyAnalyzer, yahooClient, rateClient, log)

	srv := server.New(server.Config{
		Log:             log,
		Config:          cfg,
		AnalysisHandler: analysisHandler,
		CurrencyHandler: currencyHandler,
	})

	// Background jobs
	sched := scheduler.New(log)
	if err := sched.AddJob("@hourly", scheduler.NewRateRefreshJob(rateClient, log)); err != nil {
		log.Error().Err(err).Msg("Failed to register rate refresh job")
	}
	sched.Start()

	// Start server in goroutine. ErrServerClosed is the normal result of a
	// graceful shutdown, not a startup failure.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	sched.Stop()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
