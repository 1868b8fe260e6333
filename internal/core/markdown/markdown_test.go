package markdown

import (
	"strings"
	"testing"

	"github.com/agenthands/chronicle/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rosterFixture = `# Characters

## Captain Mira Vance
### Basic Info
- **Role**: Harbor master
- **First Encountered**: The docks, day 1

### Appearance
Tall, weathered, a scar across one brow.

Wears a salt-stained coat.

### Motivations
Keep the harbor running.
### Knowledge
- **Knows**: Who sank the Gull
- **Doesn't know**: The player's real name

### Image
![Captain Mira Vance](images/characters/captain_mira_vance.png)

---

## Old-Tom
### Personality
Grumpy.`

func TestTokenize(t *testing.T) {
	toks := Tokenize("# Top\n## Entry\n### Sub\n#### Deep\n#nothdr\n- **Role**: x\n![a](b.png)\n---\ntext\n")
	require.Len(t, toks, 9)

	kinds := make([]Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []Kind{Header1, Header2, Header3, Header3, Text, FieldLine, ImageLink, Rule, Text}, kinds)
	assert.Equal(t, 4, toks[3].Depth)
	assert.Equal(t, "Role", toks[5].Field)
	assert.Equal(t, "x", toks[5].Value)
	assert.Equal(t, "b.png", toks[6].Value)
}

func TestParseCharacters(t *testing.T) {
	chars := ParseCharacters(rosterFixture)
	require.Len(t, chars, 2)

	mira := chars[0]
	assert.Equal(t, "captain_mira_vance", mira.ID)
	assert.Equal(t, "Captain Mira Vance", mira.Name)
	assert.Equal(t, "Harbor master", mira.Role)
	assert.Equal(t, "The docks, day 1", mira.FirstEncountered)
	assert.Equal(t, "Tall, weathered, a scar across one brow.\n\nWears a salt-stained coat.", mira.Appearance)
	assert.Equal(t, "Keep the harbor running.", mira.Motivations, "subsection ends at the next ### line")
	assert.Equal(t, "Who sank the Gull", mira.Knows)
	assert.Equal(t, "The player's real name", mira.DoesntKnow)
	assert.Equal(t, "images/characters/captain_mira_vance.png", mira.ImagePath)
	assert.Empty(t, mira.Background)

	tom := chars[1]
	assert.Equal(t, "old_tom", tom.ID)
	assert.Equal(t, "Grumpy.", tom.Personality, "last subsection terminates at end of text")
	assert.Empty(t, tom.Role)
}

func TestParseEmptyAndMalformed(t *testing.T) {
	assert.Empty(t, ParseCharacters(""))
	assert.Empty(t, ParseCharacters("# Characters\n\nNo one yet."))
	assert.Empty(t, ParseLocations("just some prose"))

	chars := ParseCharacters("## Nameless\nstray text\n### Appearance\n")
	require.Len(t, chars, 1)
	assert.Equal(t, "", chars[0].Appearance)
}

func TestSubsectionEndsAtLineStartHeadersOnly(t *testing.T) {
	text := "## Ana\n### Background\nBorn in #7 street, loves ## signs.\n## Ben\n### Background\nQuiet\n"
	chars := ParseCharacters(text)
	require.Len(t, chars, 2)
	assert.Equal(t, "Born in #7 street, loves ## signs.", chars[0].Background)
	assert.Equal(t, "Quiet", chars[1].Background)

	deeper := ParseCharacters("## Ana\n### Background\nline\n#### Aside\nhidden\n")
	assert.Equal(t, "line", deeper[0].Background)
}

func TestParseLocations(t *testing.T) {
	text := `# Locations

## The Rusty Anchor
### Basic Info
- **Type**: Tavern
- **District**: Harbor

### Description
Low beams and smoke.

### Atmosphere
Rowdy.

### Notable Features
A cracked bell.

### NPCs Present
Old Tom

---
`
	locs := ParseLocations(text)
	require.Len(t, locs, 1)
	l := locs[0]
	assert.Equal(t, "the_rusty_anchor", l.ID)
	assert.Equal(t, "Tavern", l.Type)
	assert.Equal(t, "Harbor", l.District)
	assert.Equal(t, "Low beams and smoke.", l.Description)
	assert.Equal(t, "Rowdy.", l.Atmosphere)
	assert.Equal(t, "A cracked bell.", l.NotableFeatures)
	assert.Equal(t, "Old Tom", l.NPCsPresent, "trailing separator is not part of the body")
}

func TestParsePlayerProfile(t *testing.T) {
	text := "# Character\nName: Ash\nRole: Smuggler\n\n# Goals\nPay the debt.\n## not a section\nstill goals\n\n# Inventory\n(No items)\n\n# Quest Log\n- Find the map\n\n# Image\n![Avatar](images/player/player.png)\n"
	p := ParsePlayerProfile(text)

	assert.Equal(t, "Ash", p.Name)
	assert.Equal(t, "Smuggler", p.Role)
	assert.Equal(t, "Pay the debt.\n## not a section\nstill goals", p.Goals)
	assert.Equal(t, "", p.Inventory, "placeholder reads as empty")
	assert.Equal(t, "- Find the map", p.QuestLog)
	assert.Equal(t, "images/player/player.png", p.ImagePath)
	assert.Empty(t, p.Notes)
}

func TestParsePlayerProfileLegacyClass(t *testing.T) {
	p := ParsePlayerProfile("# Character\nName: Ash\nClass: Rogue\n\n# Inventory\n- Basic supplies\n")
	assert.Equal(t, "Rogue", p.Role)
	assert.Equal(t, "- Basic supplies", p.Inventory)
}

func TestCharacterRoundTrip(t *testing.T) {
	chars := []model.Character{
		{
			ID:               "captain_mira_vance",
			Name:             "Captain Mira Vance",
			Role:             "Harbor master",
			FirstEncountered: "Day 1",
			Appearance:       "Tall.\n\nScarred.",
			Background:       "Grew up on the water.",
			Motivations:      "Order.",
			Personality:      "Stern but fair.",
			Knows:            "The tides",
			DoesntKnow:       "The plot",
			ImagePath:        "images/characters/captain_mira_vance.jpg",
		},
		{ID: "old_tom", Name: "Old Tom"},
		{ID: "renamed_id", Name: "A New Name", Personality: "Same person."},
	}

	got := ParseCharacters(SerializeCharacters(chars))
	assert.Equal(t, chars, got)
}

func TestLocationRoundTrip(t *testing.T) {
	locs := []model.Location{
		{
			ID:              "the_rusty_anchor",
			Name:            "The Rusty Anchor",
			Type:            "Tavern",
			District:        "Harbor",
			Description:     "Low beams.",
			Atmosphere:      "Rowdy.",
			NotableFeatures: "- A cracked bell\n- A hidden door",
			NPCsPresent:     "Old Tom",
			ImagePath:       "images/locations/the_rusty_anchor.webp",
		},
		{ID: "dock_7", Name: "Dock 7", Description: "Fog."},
	}

	assert.Equal(t, locs, ParseLocations(SerializeLocations(locs)))
}

func TestPlayerProfileRoundTrip(t *testing.T) {
	full := model.PlayerProfile{
		Name:          "Ash",
		Role:          "Smuggler",
		Appearance:    "Lean.",
		Background:    "Ran cargo.",
		Personality:   "Wry.",
		Goals:         "Pay the debt.",
		Skills:        "- Lockpicking\n- Sailing",
		Inventory:     "- Rope",
		QuestLog:      "- Find the map",
		Notes:         "- Tom lies",
		Relationships: "Owes Mira.",
		ImagePath:     "images/player/player.png",
	}
	assert.Equal(t, full, ParsePlayerProfile(SerializePlayerProfile(full)))

	sparse := model.PlayerProfile{Name: "Ash"}
	text := SerializePlayerProfile(sparse)
	assert.Contains(t, text, "# Inventory\n(No items)")
	assert.Contains(t, text, "# Quest Log\n(No quests yet)")
	assert.Contains(t, text, "# Notes\n(No notes yet)")
	assert.NotContains(t, text, "# Appearance")
	assert.Equal(t, sparse, ParsePlayerProfile(text))
}

func TestSerializeOmitsEmptySubsections(t *testing.T) {
	text := SerializeCharacters([]model.Character{{ID: "ben", Name: "Ben", Personality: "Quiet"}})
	assert.Equal(t, "# Characters\n\n## Ben\n### Personality\nQuiet\n\n---\n\n", text)
}

func TestSerializeFlattensFieldLines(t *testing.T) {
	text := SerializeCharacters([]model.Character{{ID: "ben", Name: "Ben", Role: "Cook\nand spy"}})
	chars := ParseCharacters(text)
	require.Len(t, chars, 1)
	assert.Equal(t, "Cook and spy", chars[0].Role)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Captain Mira Vance":   "captain_mira_vance",
		"  Old--Tom  ":         "old_tom",
		"Dock #7":              "dock_7",
		"O'Brien":              "obrien",
		"---":                  "",
		"already_slugged_name": "already_slugged_name",
		"Ça va":                "a_va",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestSlugifyProperties(t *testing.T) {
	names := []string{"A b", "x - - y", "__lead", "trail__", "Mixed CASE 123", "ünïcödé name", "-", "a\tb"}
	for _, n := range names {
		s := Slugify(n)
		assert.Equal(t, s, Slugify(s), "idempotent for %q", n)
		assert.False(t, strings.HasPrefix(s, "_") || strings.HasSuffix(s, "_"), n)
		assert.NotContains(t, s, "__", n)
		for _, r := range s {
			assert.True(t, (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_', "%q in %q", r, s)
		}
	}
}

func TestFind(t *testing.T) {
	chars := ParseCharacters(rosterFixture)

	c, ok := FindCharacter(chars, "old_tom")
	assert.True(t, ok)
	assert.Equal(t, "Old-Tom", c.Name)

	_, ok = FindCharacter(chars, "nobody")
	assert.False(t, ok)

	_, ok = FindLocation(nil, "anywhere")
	assert.False(t, ok)
}

func TestSerializeEscapesMarkupInBodies(t *testing.T) {
	chars := []model.Character{
		{ID: "tom", Name: "Tom", Background: "Born poor.\n## Later life\nRich.", Personality: "Gruff.\n---"},
		{ID: "ana", Name: "Ana", Appearance: "# Not a header\n  ---\n\\## literal backslash", Knows: "Tides"},
	}
	text := SerializeCharacters(chars)
	assert.Contains(t, text, "\\## Later life")

	got := ParseCharacters(text)
	require.Len(t, got, 2, "body lines never start a new entry")
	assert.Equal(t, chars, got)

	locs := []model.Location{{ID: "pier", Name: "Pier", Description: "Fog.\n### Underneath\nCrabs.\n---"}}
	assert.Equal(t, locs, ParseLocations(SerializeLocations(locs)))

	p := model.PlayerProfile{Name: "Ash", Goals: "Pay the debt.\n# Inventory\n- fake", Inventory: "- Rope"}
	assert.Equal(t, p, ParsePlayerProfile(SerializePlayerProfile(p)))
}

func TestParseLastSubsectionWithoutNewline(t *testing.T) {
	locs := ParseLocations("## Dock 7\n### Description\nFog.\n\n### Atmosphere\nQuiet")
	require.Len(t, locs, 1)
	assert.Equal(t, "Fog.", locs[0].Description)
	assert.Equal(t, "Quiet", locs[0].Atmosphere)

	chars := ParseCharacters("## Ben\n### Personality\nQuiet\n\n---")
	require.Len(t, chars, 1)
	assert.Equal(t, "Quiet", chars[0].Personality)
}
