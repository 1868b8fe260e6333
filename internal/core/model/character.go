package model

// Character is one entry of the character roster (characters.md).
type Character struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name" yaml:"name"`
	Role             string `json:"role,omitempty" yaml:"role,omitempty"`
	FirstEncountered string `json:"firstEncountered,omitempty" yaml:"first_encountered,omitempty"`
	Appearance       string `json:"appearance,omitempty" yaml:"appearance,omitempty"`
	Background       string `json:"background,omitempty" yaml:"background,omitempty"`
	Motivations      string `json:"motivations,omitempty" yaml:"motivations,omitempty"`
	Personality      string `json:"personality,omitempty" yaml:"personality,omitempty"`
	Knows            string `json:"knows,omitempty" yaml:"knows,omitempty"`
	DoesntKnow       string `json:"doesntKnow,omitempty" yaml:"doesnt_know,omitempty"`
	ImagePath        string `json:"imagePath,omitempty" yaml:"image_path,omitempty"`
}

// Location is one entry of the location roster (locations.md).
type Location struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Type            string `json:"type,omitempty" yaml:"type,omitempty"`
	District        string `json:"district,omitempty" yaml:"district,omitempty"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
	Atmosphere      string `json:"atmosphere,omitempty" yaml:"atmosphere,omitempty"`
	NotableFeatures string `json:"notableFeatures,omitempty" yaml:"notable_features,omitempty"`
	NPCsPresent     string `json:"npcsPresent,omitempty" yaml:"npcs_present,omitempty"`
	ImagePath       string `json:"imagePath,omitempty" yaml:"image_path,omitempty"`
}

// PlayerProfile is the singleton player document (player.md).
type PlayerProfile struct {
	Name          string `json:"name" yaml:"name"`
	Role          string `json:"role,omitempty" yaml:"role,omitempty"`
	Appearance    string `json:"appearance,omitempty" yaml:"appearance,omitempty"`
	Background    string `json:"background,omitempty" yaml:"background,omitempty"`
	Personality   string `json:"personality,omitempty" yaml:"personality,omitempty"`
	Goals         string `json:"goals,omitempty" yaml:"goals,omitempty"`
	Skills        string `json:"skills,omitempty" yaml:"skills,omitempty"`
	Inventory     string `json:"inventory,omitempty" yaml:"inventory,omitempty"`
	QuestLog      string `json:"questLog,omitempty" yaml:"quest_log,omitempty"`
	Notes         string `json:"notes,omitempty" yaml:"notes,omitempty"`
	Relationships string `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	ImagePath     string `json:"imagePath,omitempty" yaml:"image_path,omitempty"`
}
