// Package slides structures free text into a bounded, validated slide list
// using a language-model service.
//
// The model's output is treated as untrusted semi-structured data: the
// response is sanitized, parsed strictly as JSON, shape-validated, and
// malformed candidate slides are dropped rather than repaired. Total failure
// degrades to a single sentinel error slide so the deck pipeline always has
// something renderable.
package slides

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Common structuring errors
var (
	// ErrEmptyResponse is returned when the model answered with no content.
	ErrEmptyResponse = errors.New("language model returned empty response")

	// ErrMissingAPIKey is returned when the selected chat provider has no
	// API key configured.
	ErrMissingAPIKey = errors.New("missing language model API key")

	// ErrUnknownProvider is returned for an unrecognized LLM_PROVIDER value.
	ErrUnknownProvider = errors.New("unknown language model provider")
)

// ChatService sends a single prompt to a language-model service and returns
// its free-form text response. Implementations are stateless per call;
// no conversational memory is kept between invocations.
type ChatService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ChatConfig carries the settings needed to construct a chat provider.
// Only the fields of the selected provider are consulted.
type ChatConfig struct {
	Provider string

	OpenAIAPIKey string
	OpenAIModel  string

	GeminiAPIKey string
	GeminiModel  string
}

// NewChatService constructs the chat provider named by cfg.Provider
// ("openai" by default, or "gemini").
func NewChatService(ctx context.Context, cfg ChatConfig) (ChatService, error) {
	const op = "NewChatService"

	switch strings.ToLower(cfg.Provider) {
	case "", "openai":
		return NewOpenAIChat(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	case "gemini":
		return NewGeminiChat(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownProvider, cfg.Provider)
	}
}
