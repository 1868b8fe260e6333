package llm

import (
	"context"
	"encoding/base64"
	"fmt"

	genai "google.golang.org/genai"
)

// GeminiImageClient asks a Gemini image model for an IMAGE response and
// returns the first inline image part.
type GeminiImageClient struct {
	client *genai.Client
	model  string
}

func NewGeminiImageClient(ctx context.Context, apiKey, model string) (*GeminiImageClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini image client: %w", err)
	}
	return &GeminiImageClient{client: client, model: model}, nil
}

func (c *GeminiImageClient) GenerateImage(ctx context.Context, prompt string) (Image, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		})
	if err != nil {
		return Image{}, fmt.Errorf("gemini image request failed: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return Image{
					Base64:   base64.StdEncoding.EncodeToString(part.InlineData.Data),
					MIMEType: part.InlineData.MIMEType,
				}, nil
			}
		}
	}
	return Image{}, fmt.Errorf("no image in response")
}
