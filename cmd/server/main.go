package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/datahunter/backend/config"
	httpDelivery "github.com/datahunter/backend/internal/delivery/http"
	"github.com/datahunter/backend/internal/infrastructure/fetcher"
	"github.com/datahunter/backend/internal/infrastructure/gemini"
	"github.com/datahunter/backend/internal/infrastructure/serpapi"
	"github.com/datahunter/backend/internal/usecase"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger(cfg.Log)

	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Msg("starting datahunter backend v1.0.0")

	// Initialize infrastructure dependencies
	searchClient := serpapi.NewClient(cfg.SerpAPI.APIKey, cfg.SerpAPI.BaseURL, logger)
	if searchClient.Enabled() {
		logger.Info().Str("base_url", cfg.SerpAPI.BaseURL).Msg("search provider configured")
	} else {
		logger.Warn().Msg("SERPAPI key not configured, pipeline runs without web evidence")
	}

	modelClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.BaseURL, cfg.Gemini.Timeout, logger)
	logger.Info().
		Strs("models", cfg.Gemini.Models).
		Str("base_url", cfg.Gemini.BaseURL).
		Msg("model ladder configured")

	pageFetcher := fetcher.NewPageFetcher(
		cfg.Fetcher.Timeout,
		cfg.Fetcher.UserAgent,
		cfg.Fetcher.VisibleTextLimit,
		cfg.Fetcher.JSONLDBlockLimit,
		logger,
	)
	imageDownloader := fetcher.NewImageDownloader(
		cfg.Fetcher.Timeout,
		cfg.Fetcher.UserAgent,
		cfg.Hunt.MaxImageBytes,
		logger,
	)

	// Initialize usecase layer
	hunter := usecase.NewEvidenceHunter(searchClient, imageDownloader, cfg.Hunt.MaxImageCandidates, logger)
	synthesizer := usecase.NewSynthesizer(modelClient, cfg.Gemini.Models, logger)

	huntService := usecase.NewHuntService(hunter, pageFetcher, synthesizer, logger)
	groundedService := usecase.NewGroundedService(synthesizer, logger)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(huntService, groundedService, logger)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("server listening")

	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
