package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/chronicle/internal/config"
)

func TestNewClientProviders(t *testing.T) {
	ctx := context.Background()

	c, err := NewClient(ctx, config.LLMConfig{Provider: "Claude", APIKey: "k", Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &ClaudeClient{}, c)

	c, err = NewClient(ctx, config.LLMConfig{Provider: "openai", APIKey: "k", Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	c, err = NewClient(ctx, config.LLMConfig{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	_, err = NewClient(ctx, config.LLMConfig{Provider: "parrot"})
	assert.Error(t, err)
}

func TestNewImageClient(t *testing.T) {
	ctx := context.Background()

	c, err := NewImageClient(ctx, config.ImageConfig{})
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = NewImageClient(ctx, config.ImageConfig{Provider: "openai", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIImageClient{}, c)

	_, err = NewImageClient(ctx, config.ImageConfig{Provider: "paint"})
	assert.Error(t, err)
}

func TestOllamaBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:11434/v1", OllamaBaseURL(""))
	assert.Equal(t, "http://gpu:11434/v1", OllamaBaseURL("http://gpu:11434/"))
	assert.Equal(t, "http://gpu:11434/v1", OllamaBaseURL("http://gpu:11434/v1"))
}

func TestClaudeDefaultsMaxTokens(t *testing.T) {
	c := NewClaudeClient("k", "m", "", 0)
	assert.Equal(t, defaultMaxTokens, c.maxTokens)
}
