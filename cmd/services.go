package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"slidegen/internal/config"
	"slidegen/internal/extract"
	"slidegen/internal/ocr"
	"slidegen/internal/slides"
)

// createExtractor wires the configured OCR engine into a text extractor.
func createExtractor(ctx context.Context, cfg *config.Config, language string, log zerolog.Logger) (*extract.Extractor, error) {
	if language == "" {
		language = cfg.OCRLanguage
	}

	engine, err := ocr.NewEngine(ctx, ocr.EngineConfig{
		Provider:         cfg.OCRProvider,
		APIKey:           cfg.OCRSpaceAPIKey,
		Endpoint:         cfg.OCRSpaceEndpoint,
		Timeout:          cfg.OCRTimeout,
		ProjectID:        cfg.GoogleCloudProject,
		Location:         cfg.GoogleCloudLocation,
		ProcessorID:      cfg.DocumentAIProcessorID,
		ProcessorVersion: cfg.DocumentAIProcessorVersion,
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("provider", cfg.OCRProvider).
			Msg("Failed to create OCR engine")
		return nil, fmt.Errorf("failed to create OCR engine: %w", err)
	}

	client := ocr.NewClient(engine, cfg.OCRMaxRetries, cfg.OCRRetryDelay)
	return extract.NewExtractor(client, language), nil
}

// createStructurer wires the configured chat provider into a slide structurer.
func createStructurer(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*slides.Structurer, error) {
	chat, err := slides.NewChatService(ctx, slides.ChatConfig{
		Provider:     cfg.LLMProvider,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		OpenAIModel:  cfg.OpenAIModel,
		GeminiAPIKey: cfg.GeminiAPIKey,
		GeminiModel:  cfg.GeminiModel,
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("provider", cfg.LLMProvider).
			Msg("Failed to create chat service")
		return nil, fmt.Errorf("failed to create chat service: %w", err)
	}

	return slides.NewStructurer(chat), nil
}

// loadConfig wraps config.Load with command-level logging.
func loadConfig(log zerolog.Logger) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		log.Error().
			Err(err).
			Msg("Failed to load configuration")
		return nil, err
	}
	return cfg, nil
}
