package ai

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog/log"
)

// ClaudeProvider drives the Anthropic Messages API
type ClaudeProvider struct {
	model  string
	client anthropic.Client
}

// NewClaude creates the Anthropic provider
func NewClaude(apiKey, model string) *ClaudeProvider {
	return &ClaudeProvider{
		model:  model,
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}
}

// Name returns the roster name of this provider
func (p *ClaudeProvider) Name() string {
	return "Claude"
}

// Complete sends one user prompt and returns the raw completion text
func (p *ClaudeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   maxCompletionTokens,
		Temperature: anthropic.Float(samplingTemperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Claude completion failed: %w", err)
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content = block.Text
			break
		}
	}

	if content == "" {
		return "", fmt.Errorf("Claude returned no text content")
	}

	log.Debug().
		Int64("input_tokens", resp.Usage.InputTokens).
		Int64("output_tokens", resp.Usage.OutputTokens).
		Msg("Claude completion received")

	return content, nil
}
