// Package ocr extracts text from rasterized page images through an external
// recognition service.
//
// The package separates the single-shot recognition engines (ocr.space HTTP
// API, Google Cloud Vision, Google Document AI) from the retrying Client that
// callers use. The Client owns the retry policy and the availability
// tradeoff: when every attempt fails it returns a fixed fallback sentinel
// instead of an error, so the pipeline never aborts just because the OCR
// backend is down. Callers distinguish the two outcomes through the
// Result.Fallback flag.
//
// Engine selection is driven by configuration (OCR_PROVIDER):
//   - "ocrspace": the ocr.space HTTP API (default, needs OCRSPACE_API_KEY)
//   - "vision": Google Cloud Vision document text detection
//   - "documentai": a Google Document AI OCR processor
package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"slidegen/internal/logger"
)

// FallbackText is the fixed sentinel returned when every recognition
// attempt has failed. Callers treat it as "no text extracted".
const FallbackText = "[ocr fallback: no text recognized]"

const (
	// DefaultMaxRetries is the default recognition attempt budget.
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the fixed pause between attempts. The external
	// services tend to fail in short transient bursts, so a flat delay is
	// used instead of exponential backoff.
	DefaultRetryDelay = 3 * time.Second
)

// Engine performs a single recognition attempt for one image file.
// Implementations do not retry; that is the Client's job.
type Engine interface {
	// Recognize submits the image at imagePath and returns the parsed
	// text. language is a service-specific hint such as "eng" or "ara".
	Recognize(ctx context.Context, imagePath, language string) (string, error)
}

// Result is the outcome of a Client extraction. Exactly one of the two
// shapes occurs: recognized text with Fallback=false, or FallbackText with
// Fallback=true.
type Result struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

// Client wraps an Engine with the retry-then-fallback policy.
type Client struct {
	engine     Engine
	maxRetries int
	delay      time.Duration
	log        zerolog.Logger
}

// NewClient creates a Client with the given engine and retry settings.
// maxRetries < 1 and delay < 0 fall back to the defaults.
func NewClient(engine Engine, maxRetries int, delay time.Duration) *Client {
	if maxRetries < 1 {
		maxRetries = DefaultMaxRetries
	}
	if delay < 0 {
		delay = DefaultRetryDelay
	}
	return &Client{
		engine:     engine,
		maxRetries: maxRetries,
		delay:      delay,
		log:        logger.WithComponent("ocr"),
	}
}

// ExtractText runs recognition attempts until one succeeds or the retry
// budget is exhausted. It never returns an error: exhaustion yields the
// FallbackText sentinel with Fallback=true. A canceled context cuts the
// inter-attempt wait short and also yields the fallback.
func (c *Client) ExtractText(ctx context.Context, imagePath, language string) Result {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		text, err := c.engine.Recognize(ctx, imagePath, language)
		if err == nil {
			c.log.Debug().
				Str("image", imagePath).
				Int("attempt", attempt).
				Int("text_length", len(text)).
				Msg("OCR recognition succeeded")
			return Result{Text: text}
		}

		lastErr = err
		c.log.Warn().
			Err(err).
			Str("image", imagePath).
			Int("attempt", attempt).
			Int("max_retries", c.maxRetries).
			Msg("OCR attempt failed")

		if attempt == c.maxRetries {
			break
		}
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			c.log.Warn().
				Err(ctx.Err()).
				Str("image", imagePath).
				Msg("OCR canceled while waiting to retry, using fallback")
			return Result{Text: FallbackText, Fallback: true}
		}
	}

	c.log.Error().
		Err(lastErr).
		Str("image", imagePath).
		Msg("All OCR attempts failed, using fallback")
	return Result{Text: FallbackText, Fallback: true}
}

// EngineConfig carries the settings needed to construct a recognition
// engine. Only the fields of the selected provider are consulted.
type EngineConfig struct {
	Provider string

	// ocr.space settings.
	APIKey   string
	Endpoint string
	Timeout  time.Duration

	// Document AI settings.
	ProjectID        string
	Location         string
	ProcessorID      string
	ProcessorVersion string
}

// NewEngine constructs the recognition engine named by cfg.Provider.
func NewEngine(ctx context.Context, cfg EngineConfig) (Engine, error) {
	const op = "NewEngine"

	switch strings.ToLower(cfg.Provider) {
	case "", "ocrspace":
		return NewOCRSpaceEngine(cfg.APIKey, cfg.Endpoint, cfg.Timeout)
	case "vision":
		return NewVisionEngine(ctx)
	case "documentai":
		return NewDocumentAIEngine(ctx, cfg)
	default:
		return nil, NewOCRError(op, ErrUnknownProvider, fmt.Sprintf("provider %q", cfg.Provider))
	}
}
