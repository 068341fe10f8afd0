package slides

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAIChat implements ChatService against the OpenAI chat completion API.
type OpenAIChat struct {
	client *openai.Client
	model  string
}

// NewOpenAIChat creates an OpenAI-backed chat service.
func NewOpenAIChat(apiKey, model string) (*OpenAIChat, error) {
	const op = "NewOpenAIChat"

	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w: set OPENAI_API_KEY", op, ErrMissingAPIKey)
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIChat{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// NewOpenAIChatWithClient creates a chat service with an explicit client (for testing).
func NewOpenAIChatWithClient(client *openai.Client, model string) *OpenAIChat {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIChat{client: client, model: model}
}

// Complete sends the prompt as a single user message and returns the first
// choice's content.
func (c *OpenAIChat) Complete(ctx context.Context, prompt string) (string, error) {
	const op = "Complete"

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("%s: chat completion request failed: %w", op, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyResponse)
	}

	return resp.Choices[0].Message.Content, nil
}
