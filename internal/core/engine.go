// Package core runs game turns: it composes the prompt from the campaign
// documents, calls the narrative model and writes the results back.
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/agenthands/chronicle/internal/config"
	"github.com/agenthands/chronicle/internal/core/extraction"
	"github.com/agenthands/chronicle/internal/core/generation"
	"github.com/agenthands/chronicle/internal/core/model"
	"github.com/agenthands/chronicle/internal/core/summary"
	"github.com/agenthands/chronicle/internal/llm"
	"github.com/agenthands/chronicle/internal/store"
)

// ErrImagesDisabled is returned when no image provider is configured.
var ErrImagesDisabled = errors.New("image generation is not configured")

type Engine struct {
	LLM          llm.LLMClient
	Images       llm.ImageClient
	Generator    *generation.Generator
	Summarizer   *summary.Summarizer
	SystemPrompt string
	Logger       *slog.Logger
}

// NewEngine wires the model clients. images may be nil.
func NewEngine(llmClient llm.LLMClient, images llm.ImageClient, prompts config.Prompts, systemPrompt string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		LLM:          llmClient,
		Images:       images,
		Generator:    generation.NewGenerator(llmClient, prompts),
		Summarizer:   summary.NewSummarizer(llmClient, prompts.Summary),
		SystemPrompt: systemPrompt,
		Logger:       logger,
	}
}

// TurnResult is the outcome of one player message.
type TurnResult struct {
	Narrative string
	Updates   []model.ContextUpdate
}

// BuildPrompt is the full text sent to the narrative model for a turn.
func (e *Engine) BuildPrompt(s *store.Store, message string) string {
	return e.SystemPrompt + "\n\n" + s.BuildFullContext() + "\n\nPlayer says: " + message
}

// PlayTurn sends the player's message with the campaign context, applies the
// document updates in the reply and records the turn in history. A reply
// without narrative tags is shown as is.
func (e *Engine) PlayTurn(ctx context.Context, s *store.Store, message string) (*TurnResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message is empty", store.ErrValidation)
	}

	response, err := e.LLM.Generate(ctx, e.SystemPrompt, e.BuildPrompt(s, message))
	if err != nil {
		return nil, fmt.Errorf("narrative model failed: %w", err)
	}

	parsed := extraction.Parse(response)
	narrative := parsed.Narrative
	if narrative == "" {
		e.Logger.Warn("response has no narrative tags, using raw text", "campaign", s.ID())
		narrative = strings.TrimSpace(response)
	}

	if err := s.ApplyUpdates(parsed.Updates); err != nil {
		return nil, fmt.Errorf("failed to apply updates: %w", err)
	}
	if err := s.AppendHistory(message, narrative); err != nil {
		return nil, fmt.Errorf("failed to record history: %w", err)
	}
	if err := s.UpdateLastPlayed(); err != nil {
		e.Logger.Warn("failed to update lastPlayed", "campaign", s.ID(), "error", err)
	}

	files := make([]string, len(parsed.Updates))
	for i, u := range parsed.Updates {
		files[i] = u.Filename
	}
	e.Logger.Info("turn played", "campaign", s.ID(), "updates", files)

	return &TurnResult{Narrative: narrative, Updates: parsed.Updates}, nil
}

// DraftCharacter drafts a character without saving it.
func (e *Engine) DraftCharacter(ctx context.Context, description string) (model.Character, error) {
	return e.Generator.GenerateCharacter(ctx, description)
}

// DraftLocation drafts a location without saving it.
func (e *Engine) DraftLocation(ctx context.Context, description string) (model.Location, error) {
	return e.Generator.GenerateLocation(ctx, description)
}

// PaintImage generates an image from a free-form prompt without storing it.
func (e *Engine) PaintImage(ctx context.Context, prompt string) (llm.Image, error) {
	if e.Images == nil {
		return llm.Image{}, ErrImagesDisabled
	}
	img, err := e.Images.GenerateImage(ctx, e.Generator.ImagePrompt(prompt))
	if err != nil {
		return llm.Image{}, fmt.Errorf("image model failed: %w", err)
	}
	return img, nil
}

// GenerateCharacter drafts a character and adds it to the roster.
func (e *Engine) GenerateCharacter(ctx context.Context, s *store.Store, description string) (model.Character, error) {
	draft, err := e.Generator.GenerateCharacter(ctx, description)
	if err != nil {
		return model.Character{}, err
	}
	return s.CreateCharacter(draft)
}

// GenerateLocation drafts a location and adds it to the roster.
func (e *Engine) GenerateLocation(ctx context.Context, s *store.Store, description string) (model.Location, error) {
	draft, err := e.Generator.GenerateLocation(ctx, description)
	if err != nil {
		return model.Location{}, err
	}
	return s.CreateLocation(draft)
}

// GenerateImage paints the record identified by category and id, stores the
// image and links it from the record. extra is appended to the subject.
func (e *Engine) GenerateImage(ctx context.Context, s *store.Store, category, id, extra string) (string, error) {
	if e.Images == nil {
		return "", ErrImagesDisabled
	}

	subject, err := imageSubject(s, category, id)
	if err != nil {
		return "", err
	}
	if extra = strings.TrimSpace(extra); extra != "" {
		subject = strings.TrimRight(subject, ". ") + ". " + extra
	}

	img, err := e.Images.GenerateImage(ctx, e.Generator.ImagePrompt(subject))
	if err != nil {
		return "", fmt.Errorf("image model failed: %w", err)
	}
	return e.AttachImage(s, category, id, img.Base64, img.MIMEType)
}

// AttachImage stores a base64 image and links it from its record.
func (e *Engine) AttachImage(s *store.Store, category, id, payload, mime string) (string, error) {
	if category == model.ImagePlayer {
		id = model.PlayerImageID
	}
	path, err := s.SaveImage(category, id, payload, mime)
	if err != nil {
		return "", err
	}

	switch category {
	case model.ImageCharacters:
		err = s.SetCharacterImage(id, path)
	case model.ImageLocations:
		err = s.SetLocationImage(id, path)
	case model.ImagePlayer:
		err = s.SetPlayerImage(path)
	}
	if err != nil {
		return "", err
	}
	e.Logger.Info("image attached", "campaign", s.ID(), "category", category, "id", id)
	return path, nil
}

func imageSubject(s *store.Store, category, id string) (string, error) {
	switch category {
	case model.ImageCharacters:
		c, err := s.Character(id)
		if err != nil {
			return "", err
		}
		return generation.CharacterSubject(c), nil
	case model.ImageLocations:
		l, err := s.Location(id)
		if err != nil {
			return "", err
		}
		return generation.LocationSubject(l), nil
	case model.ImagePlayer:
		p, err := s.PlayerProfile()
		if err != nil {
			return "", err
		}
		return generation.PlayerSubject(p), nil
	default:
		return "", fmt.Errorf("%w: unknown image category %q", store.ErrValidation, category)
	}
}

// CompactDocument rewrites one document through the summarizer.
func (e *Engine) CompactDocument(ctx context.Context, s *store.Store, name string) (string, error) {
	text, err := s.ReadDocument(name)
	if err != nil {
		return "", err
	}
	compacted, err := e.Summarizer.CompactDocument(ctx, text)
	if err != nil {
		return "", err
	}
	if err := s.WriteDocument(name, compacted); err != nil {
		return "", err
	}
	e.Logger.Info("document compacted", "campaign", s.ID(), "file", name, "before", len(text), "after", len(compacted))
	return compacted, nil
}
