package store

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/agenthands/chronicle/internal/core/model"
)

// Bundle is a whole campaign in structured form.
type Bundle struct {
	Metadata   model.CampaignMetadata `yaml:"metadata"`
	Player     model.PlayerProfile    `yaml:"player"`
	Characters []model.Character      `yaml:"characters"`
	Locations  []model.Location       `yaml:"locations"`
	Plot       string                 `yaml:"plot"`
	World      string                 `yaml:"world"`
	History    []model.HistoryEntry   `yaml:"history"`
}

// Bundle collects the campaign's documents, records and history.
func (s *Store) Bundle() (Bundle, error) {
	meta, err := s.Metadata()
	if err != nil {
		return Bundle{}, err
	}
	player, err := s.PlayerProfile()
	if err != nil {
		return Bundle{}, err
	}
	chars, err := s.Characters()
	if err != nil {
		return Bundle{}, err
	}
	locs, err := s.Locations()
	if err != nil {
		return Bundle{}, err
	}
	plot, err := s.ReadDocument(DocPlot)
	if err != nil {
		return Bundle{}, err
	}
	world, err := s.ReadDocument(DocContext)
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{
		Metadata:   meta,
		Player:     player,
		Characters: chars,
		Locations:  locs,
		Plot:       plot,
		World:      world,
		History:    s.History(),
	}, nil
}

// ExportYAML renders the campaign bundle as YAML.
func (s *Store) ExportYAML() ([]byte, error) {
	b, err := s.Bundle()
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return out, nil
}
