package ai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const (
	maxCompletionTokens = 400
	samplingTemperature = 0.7

	grokBaseURL   = "https://api.x.ai/v1"
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
)

// ChatProvider drives any OpenAI-compatible chat completion API.
// ChatGPT talks to the real endpoint; Grok and Gemini expose the same
// wire format behind their own base URLs.
type ChatProvider struct {
	name   string
	model  string
	client *openai.Client
}

// NewChatGPT creates the OpenAI provider
func NewChatGPT(apiKey, model string) *ChatProvider {
	return &ChatProvider{
		name:   "ChatGPT",
		model:  model,
		client: openai.NewClient(apiKey),
	}
}

// NewGrok creates the xAI provider over its OpenAI-compatible API
func NewGrok(apiKey, model string) *ChatProvider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = grokBaseURL
	return &ChatProvider{
		name:   "Grok",
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

// NewGemini creates the Google provider over its OpenAI-compatible API
func NewGemini(apiKey, model string) *ChatProvider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = geminiBaseURL
	return &ChatProvider{
		name:   "Gemini",
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

// Name returns the roster name of this provider
func (p *ChatProvider) Name() string {
	return p.name
}

// Complete sends one user prompt and returns the raw completion text
func (p *ChatProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		MaxTokens:   maxCompletionTokens,
		Temperature: samplingTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s completion failed: %w", p.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", p.name)
	}

	log.Debug().
		Str("model", p.name).
		Int("total_tokens", resp.Usage.TotalTokens).
		Msg("Chat completion received")

	return resp.Choices[0].Message.Content, nil
}
