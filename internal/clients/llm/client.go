// Package llm implements the model-call capability on top of the
// Anthropic API.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
)

const systemPrompt = "You are an expert financial analyst providing trading recommendations."

// Config holds model call settings.
type Config struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Client calls the Anthropic API with a prepared analysis prompt and
// returns the raw response text. It implements domain.ModelCaller.
type Client struct {
	client      anthropic.Client
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
	log         zerolog.Logger
}

// NewClient creates a model-call client. Sensible defaults are applied
// for anything unset in cfg except the API key, which is required.
func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "claude-sonnet-4-20250514"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &Client{
		client:      anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		log:         log.With().Str("client", "anthropic").Logger(),
	}, nil
}

// Call sends the prompt and returns the model's text. Authentication,
// rate limiting, and retries are the API layer's concern; callers treat
// any error as a recoverable model failure.
func (c *Client) Call(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if c.temperature > 0 {
		params.Temperature = anthropic.Float(c.temperature)
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("model returned an empty response")
	}

	c.log.Debug().
		Int("prompt_length", len(prompt)).
		Int("response_length", text.Len()).
		Dur("duration", time.Since(start)).
		Msg("Model call completed")

	return text.String(), nil
}
