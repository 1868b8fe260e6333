//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/chronicle/internal/config"
	"github.com/agenthands/chronicle/internal/core"
	"github.com/agenthands/chronicle/internal/driver"
	"github.com/agenthands/chronicle/internal/llm"
	"github.com/agenthands/chronicle/internal/store"
)

// liveEngine builds an engine against the provider configured in the
// environment, skipping when none is set.
func liveEngine(t *testing.T) (*core.Engine, *config.Config) {
	t.Helper()
	_ = godotenv.Load("../../.env")

	if os.Getenv("LLM_PROVIDER") == "" {
		t.Skip("Skipping integration test: LLM_PROVIDER not set")
	}

	cfg, err := config.Load("../../config/config.toml")
	require.NoError(t, err)
	cfg.ApplyEnv(os.Getenv)
	if cfg.Prompts.SystemPromptPath != "" && !strings.HasPrefix(cfg.Prompts.SystemPromptPath, "/") {
		cfg.Prompts.SystemPromptPath = "../../" + cfg.Prompts.SystemPromptPath
	}

	ctx := context.Background()
	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	require.NoError(t, err)
	images, err := llm.NewImageClient(ctx, cfg.Image)
	require.NoError(t, err)

	systemPrompt, err := cfg.SystemPrompt()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return core.NewEngine(llmClient, images, cfg.Prompts, systemPrompt, logger), cfg
}

func TestFullTurn(t *testing.T) {
	engine, cfg := liveEngine(t)

	d, err := driver.NewLocalDriver(t.TempDir())
	require.NoError(t, err)
	policy, err := store.ParseMergePolicy(cfg.Store.MergePolicy)
	require.NoError(t, err)
	registry := store.NewRegistry(d, engine.Logger, store.WithMergePolicy(policy))

	s, meta, err := registry.Create(store.CampaignInit{
		Name:       "Integration",
		PlayerName: "Ash",
		PlayerRole: "Smuggler",
	})
	require.NoError(t, err)
	assert.Equal(t, "Integration", meta.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	res, err := engine.PlayTurn(ctx, s, "I step off the boat and ask the harbor master for work.")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Narrative)
	t.Logf("narrative: %s", res.Narrative)
	for _, u := range res.Updates {
		t.Logf("update %s: %d bytes", u.Filename, len(u.Content))
	}

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, res.Narrative, history[0].GM)
}

func TestGenerateCharacterLive(t *testing.T) {
	engine, _ := liveEngine(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c, err := engine.DraftCharacter(ctx, "A grizzled ferryman who knows every smuggler on the river")
	require.NoError(t, err)
	assert.NotEmpty(t, c.Name)
	t.Logf("drafted %q: %s", c.Name, c.Role)
}
