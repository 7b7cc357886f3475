// Package anthropic implements the TextGenerator port on top of the
// Anthropic Claude Messages API.
package anthropic

import (
	"context"
	"errors"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/aretw0/canopy/pkg/domain"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-sonnet-4-20250514"

// DefaultTimeout bounds a single Messages call. Timeout handling lives here
// at the collaborator boundary, not in the pipeline engine.
const DefaultTimeout = 60 * time.Second

// Client wraps the Anthropic SDK client behind the TextGenerator port.
// Every SDK failure is converted into a *domain.ServiceError; callers never
// see raw transport errors.
type Client struct {
	client  anthropic.Client
	model   anthropic.Model
	timeout time.Duration
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithModel selects a specific Claude model.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = anthropic.Model(model)
		}
	}
}

// WithTimeout bounds each API call.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a Claude-backed generator. The API key comes from
// configuration; the pipeline itself never inspects credentials.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:   DefaultModel,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate implements ports.TextGenerator.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", classify(err)
	}

	if resp == nil || len(resp.Content) == 0 {
		return "", domain.NewServiceError("empty response from Claude API", nil)
	}

	var text string
	for i := range resp.Content {
		block := &resp.Content[i]
		if block.Type == "text" {
			text += block.AsText().Text
		}
	}
	if text == "" {
		return "", domain.NewServiceError("response contained no text content", nil)
	}
	return text, nil
}

// classify maps SDK and transport faults to ServiceError messages that stay
// useful in LastError without leaking SDK internals.
func classify(err error) *domain.ServiceError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return domain.NewServiceError("request timed out", err)
	case errors.Is(err, context.Canceled):
		return domain.NewServiceError("request canceled", err)
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 401, 403:
			return domain.NewServiceError("authentication failed", err)
		case 429:
			return domain.NewServiceError("rate limit exceeded", err)
		case 400:
			return domain.NewServiceError("bad request", err)
		case 500, 502, 503, 529:
			return domain.NewServiceError("server error", err)
		}
	}

	return domain.NewServiceError("request failed", err)
}
