package store

import (
	"strings"

	"github.com/agenthands/chronicle/internal/core/model"
)

// Context banners, in the order they appear in the composed context.
const (
	BannerPlot       = "=== PLOT STATE (SECRET) ===\n"
	BannerCharacters = "\n\n=== CHARACTERS ===\n"
	BannerLocations  = "\n\n=== LOCATIONS ===\n"
	BannerWorld      = "\n\n=== WORLD & NPC KNOWLEDGE ===\n"
	BannerPlayer     = "\n\n=== PLAYER STATE (VISIBLE TO PLAYER) ===\n"
)

// AvatarNote is added after the player state when the player has an avatar.
const AvatarNote = "\n\n[The player has an avatar image. Keep descriptions of their appearance consistent with it.]"

// BuildFullContext concatenates the five documents under fixed banners.
// Missing documents contribute empty text.
func (s *Store) BuildFullContext() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	b.WriteString(BannerPlot)
	b.WriteString(s.readLenient(DocPlot))
	b.WriteString(BannerCharacters)
	b.WriteString(s.readLenient(DocCharacters))
	b.WriteString(BannerLocations)
	b.WriteString(s.readLenient(DocLocations))
	b.WriteString(BannerWorld)
	b.WriteString(s.readLenient(DocContext))
	b.WriteString(BannerPlayer)
	b.WriteString(s.readLenient(DocPlayer))
	if _, ok := s.imagePath(model.ImagePlayer, model.PlayerImageID); ok {
		b.WriteString(AvatarNote)
	}
	return b.String()
}
