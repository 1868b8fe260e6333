// Package llm wraps the text and image model providers behind two small
// interfaces.
package llm

import (
	"context"
)

// LLMClient produces text from a system prompt and a user prompt.
type LLMClient interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Image is a generated image as base64 text plus its MIME type.
type Image struct {
	Base64   string
	MIMEType string
}

type ImageClient interface {
	GenerateImage(ctx context.Context, prompt string) (Image, error)
}
