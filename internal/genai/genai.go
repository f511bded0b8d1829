// Package genai provides GenAI-enhanced operations using the OpenAI API.

package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrNoChoicesReturned indicates the completion API returned an empty choice list.
var ErrNoChoicesReturned = errors.New("no choices returned")

// chatService defines the minimal interface for chat completions.
type chatService interface {
	Create(ctx context.Context, params openai.ChatCompletionNewParams) (openai.ChatCompletion, error)
}

// completionAdapter bridges the OpenAI SDK service to chatService.
type completionAdapter struct {
	svc openai.ChatCompletionService
}

func (a completionAdapter) Create(ctx context.Context, params openai.ChatCompletionNewParams) (openai.ChatCompletion, error) {
	resp, err := a.svc.New(ctx, params)
	if err != nil {
		return openai.ChatCompletion{}, err
	}
	return *resp, nil
}

// Client wraps the OpenAI chat completion service for enriching agent responses.
type Client struct {
	chat  chatService
	model openai.ChatModel
}

// Opts holds configuration options for the GenAI client.
type Opts struct {
	APIKey string
	Model  openai.ChatModel
}

// Option configures Opts.
type Option func(*Opts)

// WithAPIKey sets the OpenAI API key, overriding the OPENAI_API_KEY environment variable.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithModel sets the chat model used for completions.
func WithModel(model openai.ChatModel) Option {
	return func(o *Opts) { o.Model = model }
}

// NewClient initializes a new GenAI client. The API key is taken from options
// or the OPENAI_API_KEY environment variable.
func NewClient(opts ...Option) (*Client, error) {
	cfg := Opts{Model: openai.ChatModelGPT4oMini}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	cli := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	slog.Debug("GenAI.NewClient: client initialized", "model", cfg.Model)
	return &Client{chat: completionAdapter{svc: cli.Chat.Completions}, model: cfg.Model}, nil
}

// GeneratePrompt generates a response based on the provided system and user prompts.
func (c *Client) GeneratePrompt(systemPrompt, userPrompt string) (string, error) {
	return c.EnrichAgentMessage(context.Background(), systemPrompt, userPrompt)
}

// EnrichAgentMessage rewrites a canned agent message under the given system
// prompt. It satisfies the synthesizer's enricher contract.
func (c *Client) EnrichAgentMessage(ctx context.Context, systemPrompt, message string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(message),
		},
	}
	resp, err := c.chat.Create(ctx, params)
	if err != nil {
		slog.Error("GenAI.EnrichAgentMessage: completion failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoicesReturned
	}
	return resp.Choices[0].Message.Content, nil
}
