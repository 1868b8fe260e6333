// Package generation drafts characters, locations and image prompts with the
// text model.
package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/chronicle/internal/config"
	"github.com/agenthands/chronicle/internal/core/common"
	"github.com/agenthands/chronicle/internal/core/model"
	"github.com/agenthands/chronicle/internal/llm"
	"github.com/agenthands/chronicle/internal/wire"
)

type Generator struct {
	LLM     llm.LLMClient
	Prompts config.Prompts
}

func NewGenerator(llmClient llm.LLMClient, prompts config.Prompts) *Generator {
	return &Generator{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

// draft unwraps {"<key>": {...}} when the model used the wrapper and parses
// the record out of whatever JSON object remains.
func draft[T any](ctx context.Context, g *Generator, key, format, description string) (T, error) {
	var zero T
	response, err := g.LLM.Generate(ctx, "", fmt.Sprintf(format, description))
	if err != nil {
		return zero, fmt.Errorf("failed to generate %s: %w", key, err)
	}
	if obj := wire.ExtractObject(response, key); obj != "" {
		response = obj
	}
	result, err := common.ParseJSON[T](response)
	if err != nil {
		return zero, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return result, nil
}

// GenerateCharacter drafts a character from a free-text description. The
// result has no id; the store assigns one on create.
func (g *Generator) GenerateCharacter(ctx context.Context, description string) (model.Character, error) {
	c, err := draft[model.Character](ctx, g, "character", g.Prompts.Character, description)
	if err != nil {
		return model.Character{}, err
	}
	c.ID = ""
	c.ImagePath = ""
	if strings.TrimSpace(c.Name) == "" {
		return model.Character{}, fmt.Errorf("generated character has no name")
	}
	return c, nil
}

// GenerateLocation drafts a location from a free-text description.
func (g *Generator) GenerateLocation(ctx context.Context, description string) (model.Location, error) {
	l, err := draft[model.Location](ctx, g, "location", g.Prompts.Location, description)
	if err != nil {
		return model.Location{}, err
	}
	l.ID = ""
	l.ImagePath = ""
	if strings.TrimSpace(l.Name) == "" {
		return model.Location{}, fmt.Errorf("generated location has no name")
	}
	return l, nil
}

// ImagePrompt wraps a subject description in the configured image style.
func (g *Generator) ImagePrompt(subject string) string {
	if g.Prompts.Image == "" {
		return subject
	}
	return fmt.Sprintf(g.Prompts.Image, subject)
}

// CharacterSubject describes a character for an image prompt.
func CharacterSubject(c model.Character) string {
	return joinNonEmpty("Portrait of "+c.Name, c.Role, c.Appearance)
}

// LocationSubject describes a location for an image prompt.
func LocationSubject(l model.Location) string {
	return joinNonEmpty("View of "+l.Name, l.Type, l.Description, l.Atmosphere)
}

// PlayerSubject describes the player for an avatar prompt.
func PlayerSubject(p model.PlayerProfile) string {
	return joinNonEmpty("Portrait of "+p.Name, p.Role, p.Appearance)
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ". ")
}
