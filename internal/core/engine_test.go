package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/chronicle/internal/config"
	"github.com/agenthands/chronicle/internal/core/model"
	"github.com/agenthands/chronicle/internal/driver"
	"github.com/agenthands/chronicle/internal/llm"
	"github.com/agenthands/chronicle/internal/store"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestCampaign(t *testing.T) *store.Store {
	t.Helper()
	d, err := driver.NewLocalDriver(t.TempDir())
	require.NoError(t, err)
	r := store.NewRegistry(d, testLogger)
	s, _, err := r.Create(store.CampaignInit{Name: "Salt", PlayerName: "Ash", PlayerRole: "Smuggler"})
	require.NoError(t, err)
	return s
}

func newTestEngine(llmClient llm.LLMClient, images llm.ImageClient) *Engine {
	return NewEngine(llmClient, images, config.Default().Prompts, "SYSTEM", testLogger)
}

func TestPlayTurn(t *testing.T) {
	s := newTestCampaign(t)
	mockLLM := &MockLLM{
		Response: "[NARRATIVE]The door creaks open.[/NARRATIVE]\n" +
			"[UPDATE:player.md]- Found a rusty key[/UPDATE]\n" +
			"[UPDATE:secrets.md]nope[/UPDATE]",
	}
	e := newTestEngine(mockLLM, nil)

	res, err := e.PlayTurn(context.Background(), s, "I open the door")
	require.NoError(t, err)
	assert.Equal(t, "The door creaks open.", res.Narrative)
	require.Len(t, res.Updates, 1)
	assert.Equal(t, "player.md", res.Updates[0].Filename)

	require.Len(t, mockLLM.Prompts, 1)
	prompt := mockLLM.Prompts[0]
	assert.Equal(t, "SYSTEM", mockLLM.Systems[0])
	assert.True(t, strings.HasPrefix(prompt, "SYSTEM\n\n"+store.BannerPlot))
	assert.True(t, strings.HasSuffix(prompt, "\n\nPlayer says: I open the door"))

	assert.True(t, strings.HasSuffix(s.PlayerState(), "\n- Found a rusty key"))
	assert.Equal(t, []model.HistoryEntry{{Player: "I open the door", GM: "The door creaks open."}}, s.History())
}

func TestPlayTurnUntaggedResponse(t *testing.T) {
	s := newTestCampaign(t)
	e := newTestEngine(&MockLLM{Response: "  Just prose.\n"}, nil)

	res, err := e.PlayTurn(context.Background(), s, "hello")
	require.NoError(t, err)
	assert.Equal(t, "Just prose.", res.Narrative)
	assert.Empty(t, res.Updates)
	assert.Equal(t, "Just prose.", s.History()[0].GM)
}

func TestPlayTurnModelFailureLeavesStateAlone(t *testing.T) {
	s := newTestCampaign(t)
	e := newTestEngine(&MockLLM{Err: errors.New("overloaded")}, nil)
	before := s.BuildFullContext()

	_, err := e.PlayTurn(context.Background(), s, "hello")
	assert.ErrorContains(t, err, "overloaded")
	assert.Empty(t, s.History())
	assert.Equal(t, before, s.BuildFullContext())

	_, err = e.PlayTurn(context.Background(), s, "   ")
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestPlayTurnSeesPreviousUpdates(t *testing.T) {
	s := newTestCampaign(t)
	mockLLM := &MockLLM{ResponseQueue: []string{
		"[NARRATIVE]One.[/NARRATIVE][UPDATE:context.md]- Tom is awake[/UPDATE]",
		"[NARRATIVE]Two.[/NARRATIVE]",
	}}
	e := newTestEngine(mockLLM, nil)

	_, err := e.PlayTurn(context.Background(), s, "first")
	require.NoError(t, err)
	_, err = e.PlayTurn(context.Background(), s, "second")
	require.NoError(t, err)

	assert.Contains(t, mockLLM.Prompts[1], "- Tom is awake")
	assert.Len(t, s.History(), 2)
}

func TestGenerateCharacterAndImage(t *testing.T) {
	s := newTestCampaign(t)
	mockLLM := &MockLLM{Response: `{"character": {"name": "Old Tom", "role": "Barkeep", "appearance": "Bald."}}`}
	mockImage := &MockImage{Image: llm.Image{Base64: "AQID", MIMEType: "image/jpeg"}}
	e := newTestEngine(mockLLM, mockImage)

	c, err := e.GenerateCharacter(context.Background(), s, "a grumpy barkeep")
	require.NoError(t, err)
	assert.Equal(t, "old_tom", c.ID)

	_, err = e.GenerateCharacter(context.Background(), s, "the same barkeep")
	assert.ErrorIs(t, err, store.ErrConflict)

	path, err := e.GenerateImage(context.Background(), s, model.ImageCharacters, "old_tom", "holding a mug")
	require.NoError(t, err)
	assert.Equal(t, "images/characters/old_tom.jpg", path)
	assert.Contains(t, mockImage.LastPrompt, "Portrait of Old Tom. Barkeep. Bald. holding a mug")

	got, err := s.Character("old_tom")
	require.NoError(t, err)
	assert.Equal(t, path, got.ImagePath)
}

func TestGenerateLocation(t *testing.T) {
	s := newTestCampaign(t)
	e := newTestEngine(&MockLLM{Response: `{"location": {"name": "Dock 7", "description": "Fog."}}`}, nil)

	l, err := e.GenerateLocation(context.Background(), s, "foggy dock")
	require.NoError(t, err)
	assert.Equal(t, "dock_7", l.ID)

	locs, err := s.Locations()
	require.NoError(t, err)
	assert.Len(t, locs, 1)
}

func TestGenerateImageErrors(t *testing.T) {
	s := newTestCampaign(t)

	e := newTestEngine(&MockLLM{}, nil)
	_, err := e.GenerateImage(context.Background(), s, model.ImagePlayer, "", "")
	assert.ErrorIs(t, err, ErrImagesDisabled)

	e = newTestEngine(&MockLLM{}, &MockImage{Image: llm.Image{Base64: "AQID"}})
	_, err = e.GenerateImage(context.Background(), s, model.ImageCharacters, "nobody", "")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = e.GenerateImage(context.Background(), s, "maps", "x", "")
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestAttachPlayerImage(t *testing.T) {
	s := newTestCampaign(t)
	e := newTestEngine(&MockLLM{}, nil)

	path, err := e.AttachImage(s, model.ImagePlayer, "ignored", "data:image/webp;base64,AQID", "")
	require.NoError(t, err)
	assert.Equal(t, "images/player/player.webp", path)

	p, err := s.PlayerProfile()
	require.NoError(t, err)
	assert.Equal(t, path, p.ImagePath)
	assert.True(t, strings.HasSuffix(s.BuildFullContext(), store.AvatarNote))
}

func TestCompactDocument(t *testing.T) {
	s := newTestCampaign(t)
	e := newTestEngine(&MockLLM{Response: `{"summary": "# World State\n- Day 2"}`}, nil)

	out, err := e.CompactDocument(context.Background(), s, store.DocContext)
	require.NoError(t, err)
	assert.Equal(t, "# World State\n- Day 2\n", out)

	text, err := s.ReadDocument(store.DocContext)
	require.NoError(t, err)
	assert.Equal(t, out, text)

	_, err = e.CompactDocument(context.Background(), s, "history.json")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDraftsAreNotSaved(t *testing.T) {
	s := newTestCampaign(t)
	e := newTestEngine(&MockLLM{Response: `{"character": {"name": "Ben"}}`}, nil)

	c, err := e.DraftCharacter(context.Background(), "a cook")
	require.NoError(t, err)
	assert.Equal(t, "Ben", c.Name)

	chars, err := s.Characters()
	require.NoError(t, err)
	assert.Empty(t, chars)
}

func TestPaintImage(t *testing.T) {
	e := newTestEngine(&MockLLM{}, nil)
	_, err := e.PaintImage(context.Background(), "a ship")
	assert.ErrorIs(t, err, ErrImagesDisabled)

	mockImage := &MockImage{Image: llm.Image{Base64: "AQID", MIMEType: "image/png"}}
	e = newTestEngine(&MockLLM{}, mockImage)
	img, err := e.PaintImage(context.Background(), "a ship")
	require.NoError(t, err)
	assert.Equal(t, "AQID", img.Base64)
	assert.Contains(t, mockImage.LastPrompt, "a ship")
}
