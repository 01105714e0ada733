package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/songzhibin97/pairscout/internal/configs"
)

const DefaultBaseURL = "https://router.huggingface.co/v1"

// ChatCompleter implements ai.Completer against any OpenAI compatible chat endpoint
type ChatCompleter struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	topP        float32
}

// NewChatCompleter creates a completer from the AI config
func NewChatCompleter(cfg configs.AIConfig) *ChatCompleter {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = DefaultBaseURL
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	model := cfg.ModelType
	if model == "" {
		model = "deepseek-ai/DeepSeek-R1-0528-Qwen3-8B"
	}

	return &ChatCompleter{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
	}
}

// Complete implements ai.Completer
func (c *ChatCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   c.maxTokens,
			Temperature: c.temperature,
			TopP:        c.topP,
		},
	)
	if err != nil {
		return "", fmt.Errorf("completion api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response from completion api")
	}

	return resp.Choices[0].Message.Content, nil
}
