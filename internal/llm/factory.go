package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/chronicle/internal/config"
)

const defaultMaxTokens = 4096

// NewClient builds the text client for the configured provider.
func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "claude", "anthropic":
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens), nil

	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens), nil

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.MaxTokens)
		if err != nil {
			return nil, err
		}
		return c, nil

	case "ollama":
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama" // ignored by ollama, required by the client
		}
		return NewOpenAIClient(apiKey, cfg.Model, OllamaBaseURL(cfg.BaseURL), cfg.MaxTokens), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}

// NewImageClient builds the image client. An empty provider disables image
// generation and returns nil.
func NewImageClient(ctx context.Context, cfg config.ImageConfig) (ImageClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "", "none":
		return nil, nil
	case "gemini":
		c, err := NewGeminiImageClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "openai":
		return NewOpenAIImageClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.Size), nil
	default:
		return nil, fmt.Errorf("unsupported image provider: %s", provider)
	}
}

// OllamaBaseURL points at ollama's OpenAI-compatible API.
func OllamaBaseURL(baseURL string) string {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if strings.HasSuffix(baseURL, "/v1") {
		return baseURL
	}
	return strings.TrimRight(baseURL, "/") + "/v1"
}
