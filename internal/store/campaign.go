package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/agenthands/chronicle/internal/core/markdown"
	"github.com/agenthands/chronicle/internal/core/model"
)

// Starting documents of a new campaign.
const (
	TemplatePlot = "# Current Arc\nThe adventure begins...\n\n" +
		"# Planted Seeds\n(None yet)\n\n" +
		"# Future Twists\n(To be developed)\n\n" +
		"# Completed Arcs\n(None yet)\n"
	TemplateContext = "# NPCs\n(No NPCs encountered yet)\n\n" +
		"# World State\n- Time: Day 1, Morning\n- Location: Starting area\n- Weather: Clear\n"
	TemplateCharacters = "# Characters\n\n"
	TemplateLocations  = "# Locations\n\n"

	defaultInventory = "- Basic supplies"
)

// CampaignInit holds what a new campaign starts from.
type CampaignInit struct {
	Name       string `json:"name"`
	PlayerName string `json:"playerName"`
	PlayerRole string `json:"playerRole"`
}

func (c CampaignInit) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Length(0, 200)),
		validation.Field(&c.PlayerName, validation.Required, validation.Length(1, 100)),
		validation.Field(&c.PlayerRole, validation.Length(0, 100)),
	)
}

// InitNewCampaign writes the starting documents, an empty history, the image
// directories and metadata. Existing files are overwritten.
func (s *Store) InitNewCampaign(init CampaignInit) (model.CampaignMetadata, error) {
	init.Name = strings.TrimSpace(init.Name)
	init.PlayerName = strings.TrimSpace(init.PlayerName)
	init.PlayerRole = strings.TrimSpace(init.PlayerRole)
	if err := init.Validate(); err != nil {
		return model.CampaignMetadata{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if init.Name == "" {
		init.Name = init.PlayerName + "'s Campaign"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.driver.MkdirAll(s.path()); err != nil {
		return model.CampaignMetadata{}, fmt.Errorf("failed to create campaign directory: %w", err)
	}
	for _, category := range model.ImageCategories {
		if err := s.driver.MkdirAll(s.path(DirImages, category)); err != nil {
			return model.CampaignMetadata{}, fmt.Errorf("failed to create image directory: %w", err)
		}
	}

	player := markdown.SerializePlayerProfile(model.PlayerProfile{
		Name:      init.PlayerName,
		Role:      init.PlayerRole,
		Inventory: defaultInventory,
	})
	files := []struct{ name, content string }{
		{DocPlot, TemplatePlot},
		{DocContext, TemplateContext},
		{DocPlayer, player},
		{DocCharacters, TemplateCharacters},
		{DocLocations, TemplateLocations},
		{FileHistory, emptyHistory},
	}
	for _, f := range files {
		if err := s.write(f.name, f.content); err != nil {
			return model.CampaignMetadata{}, err
		}
	}

	now := s.now().UTC().Truncate(time.Second)
	meta := model.CampaignMetadata{
		ID:         s.id,
		Name:       init.Name,
		PlayerName: init.PlayerName,
		PlayerRole: init.PlayerRole,
		Created:    now,
		LastPlayed: now,
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return model.CampaignMetadata{}, fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := s.write(FileMetadata, string(data)); err != nil {
		return model.CampaignMetadata{}, err
	}

	s.logger.Info("campaign initialized", "name", meta.Name, "player", meta.PlayerName)
	return meta, nil
}

// Metadata reads metadata.json.
func (s *Store) Metadata() (model.CampaignMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metadata()
}

func (s *Store) metadata() (model.CampaignMetadata, error) {
	raw, err := s.read(FileMetadata)
	if err != nil {
		return model.CampaignMetadata{}, err
	}
	if raw == "" {
		return model.CampaignMetadata{}, notFound("campaign", s.id)
	}
	var meta model.CampaignMetadata
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return model.CampaignMetadata{}, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if meta.ID == "" {
		meta.ID = s.id
	}
	return meta, nil
}

// Exists reports whether the campaign has metadata on disk.
func (s *Store) Exists() bool {
	return s.driver.Exists(s.path(FileMetadata))
}

// UpdateLastPlayed rewrites the lastPlayed value in place, leaving every
// other byte of metadata.json untouched. A missing file, invalid JSON or a
// missing lastPlayed key is left alone.
func (s *Store) UpdateLastPlayed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.read(FileMetadata)
	if err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	if !gjson.Valid(raw) || !gjson.Get(raw, "lastPlayed").Exists() {
		s.logger.Warn("metadata has no lastPlayed field, not updating")
		return nil
	}
	stamp := s.now().UTC().Truncate(time.Second).Format(time.RFC3339)
	updated, err := sjson.Set(raw, "lastPlayed", stamp)
	if err != nil {
		return fmt.Errorf("failed to update lastPlayed: %w", err)
	}
	return s.write(FileMetadata, updated)
}
