package model

import "time"

// CampaignMetadata mirrors metadata.json.
type CampaignMetadata struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	PlayerName string    `json:"playerName" yaml:"player_name"`
	PlayerRole string    `json:"playerRole" yaml:"player_role"`
	Created    time.Time `json:"created" yaml:"created"`
	LastPlayed time.Time `json:"lastPlayed" yaml:"last_played"`
}

// HistoryEntry is one turn of history.json. Entries are only ever appended.
type HistoryEntry struct {
	Player string `json:"player" yaml:"player"`
	GM     string `json:"gm" yaml:"gm"`
}

// ContextUpdate is a fragment the narrative model asked to add to a document.
type ContextUpdate struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// Image categories under images/.
const (
	ImagePlayer     = "player"
	ImageCharacters = "characters"
	ImageLocations  = "locations"
)

// ImageCategories lists the categories a campaign creates directories for.
var ImageCategories = []string{ImagePlayer, ImageCharacters, ImageLocations}

// PlayerImageID is the fixed id of the player avatar.
const PlayerImageID = "player"
