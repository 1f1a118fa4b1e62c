package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/syedahmad/aireply/internal/logging"
)

// DefaultModel is the completion model used unless configuration says
// otherwise.
const DefaultModel = shared.ChatModelGPT4o

// Client talks to the chat-completion API and turns responses into typed
// reply sets and summaries.
type Client struct {
	api    openai.Client
	model  shared.ChatModel
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the completion model.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = shared.ChatModel(model)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient builds a generation gateway. Extra request options (base URL
// overrides for tests, middlewares) are passed through to the underlying
// API client.
func NewClient(apiKey string, requestOpts []option.RequestOption, opts ...Option) *Client {
	c := &Client{
		model:  DefaultModel,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.api = openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, requestOpts...)...)
	c.logger = logging.WithService(c.logger, "genai")
	return c
}

// Complete performs one non-streaming chat completion with temperature
// zero and returns the assistant message content as opaque text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Model:       c.model,
		Temperature: openai.Float(0.0),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

// GenerateReplies produces the three-draft reply set for an email body,
// optionally steered by user notes.
func (c *Client) GenerateReplies(ctx context.Context, emailBody, notes string) (ReplySet, error) {
	text, err := c.Complete(ctx, SystemRole, ReplyPrompt(emailBody, notes))
	if err != nil {
		return ReplySet{}, err
	}
	set, err := ParseReplySet(text)
	if err != nil {
		c.logger.WarnContext(ctx, "reply generation response rejected", logging.Err(err))
		return ReplySet{}, err
	}
	return set, nil
}

// GenerateSummary produces a summary of an email body.
func (c *Client) GenerateSummary(ctx context.Context, emailBody string) (Summary, error) {
	text, err := c.Complete(ctx, SystemRole, SummaryPrompt(emailBody))
	if err != nil {
		return Summary{}, err
	}
	summary, err := ParseSummary(text)
	if err != nil {
		c.logger.WarnContext(ctx, "summary response rejected", logging.Err(err))
		return Summary{}, err
	}
	return summary, nil
}
