package slides

import (
	"context"
	"fmt"

	genai "google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiChat implements ChatService against the Google Gemini API.
type GeminiChat struct {
	client *genai.Client
	model  string
}

// NewGeminiChat creates a Gemini-backed chat service.
func NewGeminiChat(ctx context.Context, apiKey, model string) (*GeminiChat, error) {
	const op = "NewGeminiChat"

	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w: set GEMINI_API_KEY", op, ErrMissingAPIKey)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create Gemini client: %w", op, err)
	}
	return &GeminiChat{client: client, model: model}, nil
}

// Complete sends the prompt as a single user content and returns the
// response text.
func (c *GeminiChat) Complete(ctx context.Context, prompt string) (string, error) {
	const op = "Complete"

	res, err := c.client.Models.GenerateContent(ctx, c.model, []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}, nil)
	if err != nil {
		return "", fmt.Errorf("%s: generate content request failed: %w", op, err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyResponse)
	}
	return text, nil
}
