package core

import (
	"context"
	"errors"

	"github.com/agenthands/chronicle/internal/llm"
)

type MockLLM struct {
	Response      string
	ResponseQueue []string
	Err           error

	Systems []string
	Prompts []string
}

func (m *MockLLM) Generate(ctx context.Context, system, prompt string) (string, error) {
	m.Systems = append(m.Systems, system)
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}

type MockImage struct {
	Image      llm.Image
	Err        error
	LastPrompt string
}

func (m *MockImage) GenerateImage(ctx context.Context, prompt string) (llm.Image, error) {
	m.LastPrompt = prompt
	if m.Err != nil {
		return llm.Image{}, m.Err
	}
	if m.Image.Base64 == "" {
		return llm.Image{}, errors.New("no image configured")
	}
	return m.Image, nil
}
