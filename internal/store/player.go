package store

import (
	"strings"

	"github.com/agenthands/chronicle/internal/core/markdown"
	"github.com/agenthands/chronicle/internal/core/model"
)

// PlayerProfile parses player.md.
func (s *Store) PlayerProfile() (model.PlayerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, err := s.read(DocPlayer)
	if err != nil {
		return model.PlayerProfile{}, err
	}
	return markdown.ParsePlayerProfile(text), nil
}

// UpdatePlayerProfile rewrites player.md from p. An empty image path keeps
// the current avatar link.
func (s *Store) UpdatePlayerProfile(p model.PlayerProfile) (model.PlayerProfile, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return model.PlayerProfile{}, invalid("player name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ImagePath == "" {
		text, err := s.read(DocPlayer)
		if err != nil {
			return model.PlayerProfile{}, err
		}
		p.ImagePath = markdown.ParsePlayerProfile(text).ImagePath
	}
	if err := s.write(DocPlayer, markdown.SerializePlayerProfile(p)); err != nil {
		return model.PlayerProfile{}, err
	}
	return p, nil
}

// AddPlayerNote appends "- note" to the Notes section of player.md. Only that
// section changes; text added by narrative updates elsewhere is kept.
func (s *Store) AddPlayerNote(note string) error {
	note = strings.Join(strings.Fields(note), " ")
	if note == "" {
		return invalid("note is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	text, err := s.read(DocPlayer)
	if err != nil {
		return err
	}
	return s.write(DocPlayer, markdown.AppendListItem(text, markdown.SectionNotes, 1, note, markdown.PlaceholderNotes))
}

// SetPlayerImage links a stored avatar from the Image section of player.md,
// leaving the rest of the file as it is.
func (s *Store) SetPlayerImage(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	text, err := s.read(DocPlayer)
	if err != nil {
		return err
	}
	return s.write(DocPlayer, markdown.LinkImage(text, markdown.SectionImage, 1, "Avatar", path))
}
