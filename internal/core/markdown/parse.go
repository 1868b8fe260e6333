package markdown

import (
	"strings"

	"github.com/agenthands/chronicle/internal/core/model"
)

// Subsection and section titles. These are part of the file format.
const (
	secBasicInfo       = "Basic Info"
	secAppearance      = "Appearance"
	secBackground      = "Background"
	secMotivations     = "Motivations"
	secPersonality     = "Personality"
	secKnowledge       = "Knowledge"
	secImage           = "Image"
	secDescription     = "Description"
	secAtmosphere      = "Atmosphere"
	secNotableFeatures = "Notable Features"
	secNPCsPresent     = "NPCs Present"

	secCharacter     = "Character"
	secGoals         = "Goals"
	secSkills        = "Skills"
	secInventory     = "Inventory"
	secQuestLog      = "Quest Log"
	secNotes         = "Notes"
	secRelationships = "Relationships"

	fieldID               = "ID"
	fieldRole             = "Role"
	fieldFirstEncountered = "First Encountered"
	fieldKnows            = "Knows"
	fieldDoesntKnow       = "Doesn't know"
	fieldType             = "Type"
	fieldDistrict         = "District"
)

// Player sections edited in place by the store.
const (
	SectionNotes = secNotes
	SectionImage = secImage
)

// Placeholder bodies written for empty player sections.
const (
	PlaceholderInventory = "(No items)"
	PlaceholderQuestLog  = "(No quests yet)"
	PlaceholderNotes     = "(No notes yet)"
)

// entry is one level-2 roster entry split into its subsections.
type entry struct {
	name string
	subs []Section
}

func (e entry) text(title string) string {
	if s, ok := Find(e.subs, title); ok {
		return s.Text()
	}
	return ""
}

func (e entry) field(title, name string) string {
	if s, ok := Find(e.subs, title); ok {
		return s.Field(name)
	}
	return ""
}

func (e entry) image() string {
	if s, ok := Find(e.subs, secImage); ok {
		return s.Image()
	}
	return ""
}

// id is the stored id override if present, else the slug of the name.
func (e entry) id() string {
	if id := e.field(secBasicInfo, fieldID); id != "" {
		return id
	}
	return Slugify(e.name)
}

func splitEntries(text string) []entry {
	var out []entry
	for _, sec := range Sections(Tokenize(text), 2) {
		out = append(out, entry{
			name: sec.Header.Title,
			subs: Sections(trimTrailingRules(sec.Body), 3),
		})
	}
	return out
}

// ParseCharacters reads every "## Name" entry of a character roster. Missing
// subsections leave the corresponding fields empty.
func ParseCharacters(text string) []model.Character {
	var chars []model.Character
	for _, e := range splitEntries(text) {
		chars = append(chars, model.Character{
			ID:               e.id(),
			Name:             e.name,
			Role:             e.field(secBasicInfo, fieldRole),
			FirstEncountered: e.field(secBasicInfo, fieldFirstEncountered),
			Appearance:       e.text(secAppearance),
			Background:       e.text(secBackground),
			Motivations:      e.text(secMotivations),
			Personality:      e.text(secPersonality),
			Knows:            e.field(secKnowledge, fieldKnows),
			DoesntKnow:       e.field(secKnowledge, fieldDoesntKnow),
			ImagePath:        e.image(),
		})
	}
	return chars
}

// ParseLocations reads every "## Name" entry of a location roster.
func ParseLocations(text string) []model.Location {
	var locs []model.Location
	for _, e := range splitEntries(text) {
		locs = append(locs, model.Location{
			ID:              e.id(),
			Name:            e.name,
			Type:            e.field(secBasicInfo, fieldType),
			District:        e.field(secBasicInfo, fieldDistrict),
			Description:     e.text(secDescription),
			Atmosphere:      e.text(secAtmosphere),
			NotableFeatures: e.text(secNotableFeatures),
			NPCsPresent:     e.text(secNPCsPresent),
			ImagePath:       e.image(),
		})
	}
	return locs
}

// ParsePlayerProfile reads the level-1 sections of player.md. Name and role
// are "Name:" / "Role:" lines inside the Character section; campaigns created
// before roles existed carry "Class:" instead.
func ParsePlayerProfile(text string) model.PlayerProfile {
	secs := Sections(Tokenize(text), 1)
	body := func(title string) string {
		if s, ok := Find(secs, title); ok {
			return s.Text()
		}
		return ""
	}
	withPlaceholder := func(title, placeholder string) string {
		if v := body(title); v != placeholder {
			return v
		}
		return ""
	}

	var p model.PlayerProfile
	if s, ok := Find(secs, secCharacter); ok {
		p.Name = linePrefixed(s.Body, "Name:")
		p.Role = linePrefixed(s.Body, "Role:")
		if p.Role == "" {
			p.Role = linePrefixed(s.Body, "Class:")
		}
	}
	p.Appearance = body(secAppearance)
	p.Background = body(secBackground)
	p.Personality = body(secPersonality)
	p.Goals = body(secGoals)
	p.Skills = body(secSkills)
	p.Inventory = withPlaceholder(secInventory, PlaceholderInventory)
	p.QuestLog = withPlaceholder(secQuestLog, PlaceholderQuestLog)
	p.Notes = withPlaceholder(secNotes, PlaceholderNotes)
	p.Relationships = body(secRelationships)
	if s, ok := Find(secs, secImage); ok {
		p.ImagePath = s.Image()
	}
	return p
}

func linePrefixed(body []Token, prefix string) string {
	for _, tok := range body {
		if v, ok := strings.CutPrefix(tok.Line, prefix); ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// FindCharacter returns the character with the given id.
func FindCharacter(chars []model.Character, id string) (model.Character, bool) {
	for _, c := range chars {
		if c.ID == id {
			return c, true
		}
	}
	return model.Character{}, false
}

// FindLocation returns the location with the given id.
func FindLocation(locs []model.Location, id string) (model.Location, bool) {
	for _, l := range locs {
		if l.ID == id {
			return l, true
		}
	}
	return model.Location{}, false
}
