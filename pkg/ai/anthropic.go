package ai

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/johnquangdev/fathom-relay/pkg/config"
)

// AnthropicClient wraps the Anthropic SDK for single-prompt completions
type AnthropicClient struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicClient creates an Anthropic client using values from the
// provided config. When the key is empty the SDK reads ANTHROPIC_API_KEY.
// SDK retries are disabled; the analyzer owns the retry policy.
func NewAnthropicClient(cfg *config.AnthropicConfig, timeout time.Duration) *AnthropicClient {
	c := &AnthropicClient{
		model:     "claude-sonnet-4-20250514",
		maxTokens: 1000,
	}

	opts := []option.RequestOption{
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
		option.WithMaxRetries(0),
	}
	if cfg != nil {
		if cfg.APIKey != "" {
			opts = append(opts, option.WithAPIKey(cfg.APIKey))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")+"/"))
		}
		if cfg.Model != "" {
			c.model = cfg.Model
		}
		if cfg.MaxTokens > 0 {
			c.maxTokens = cfg.MaxTokens
		}
	}

	c.client = anthropic.NewClient(opts...)
	return c
}

// Name identifies the provider in logs and metrics
func (a *AnthropicClient) Name() string {
	return config.ProviderAnthropic
}

// Complete sends a single user prompt and returns the first text block
func (a *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(a.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if stdErrors.As(err, &apiErr) {
			return "", &StatusError{
				Provider:   a.Name(),
				StatusCode: apiErr.StatusCode,
				Body:       truncateBody(apiErr.RawJSON()),
			}
		}
		return "", fmt.Errorf("anthropic request: %w", err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("empty response from anthropic")
}
