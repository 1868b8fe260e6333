package markdown

import (
	"strings"

	"github.com/agenthands/chronicle/internal/core/model"
)

// SerializeCharacters writes a character roster in canonical order. Empty
// subsections are omitted; each entry ends with a "---" separator.
func SerializeCharacters(chars []model.Character) string {
	var b strings.Builder
	b.WriteString("# Characters\n\n")
	for _, c := range chars {
		b.WriteString("## " + oneLine(c.Name) + "\n")

		basic := fields(
			idOverride(c.ID, c.Name),
			kv{fieldRole, c.Role},
			kv{fieldFirstEncountered, c.FirstEncountered},
		)
		writeFields(&b, secBasicInfo, basic)
		writeBody(&b, "### ", secAppearance, c.Appearance)
		writeBody(&b, "### ", secBackground, c.Background)
		writeBody(&b, "### ", secMotivations, c.Motivations)
		writeBody(&b, "### ", secPersonality, c.Personality)
		writeFields(&b, secKnowledge, fields(
			kv{fieldKnows, c.Knows},
			kv{fieldDoesntKnow, c.DoesntKnow},
		))
		writeImage(&b, "### ", c.Name, c.ImagePath)
		b.WriteString("---\n\n")
	}
	return b.String()
}

// SerializeLocations writes a location roster in canonical order.
func SerializeLocations(locs []model.Location) string {
	var b strings.Builder
	b.WriteString("# Locations\n\n")
	for _, l := range locs {
		b.WriteString("## " + oneLine(l.Name) + "\n")

		writeFields(&b, secBasicInfo, fields(
			idOverride(l.ID, l.Name),
			kv{fieldType, l.Type},
			kv{fieldDistrict, l.District},
		))
		writeBody(&b, "### ", secDescription, l.Description)
		writeBody(&b, "### ", secAtmosphere, l.Atmosphere)
		writeBody(&b, "### ", secNotableFeatures, l.NotableFeatures)
		writeBody(&b, "### ", secNPCsPresent, l.NPCsPresent)
		writeImage(&b, "### ", l.Name, l.ImagePath)
		b.WriteString("---\n\n")
	}
	return b.String()
}

// SerializePlayerProfile writes player.md. Inventory, Quest Log and Notes are
// always present, with a placeholder line when empty.
func SerializePlayerProfile(p model.PlayerProfile) string {
	var b strings.Builder
	b.WriteString("# Character\n")
	b.WriteString("Name: " + oneLine(p.Name) + "\n")
	if p.Role != "" {
		b.WriteString("Role: " + oneLine(p.Role) + "\n")
	}
	b.WriteString("\n")

	writeBody(&b, "# ", secAppearance, p.Appearance)
	writeBody(&b, "# ", secBackground, p.Background)
	writeBody(&b, "# ", secPersonality, p.Personality)
	writeBody(&b, "# ", secGoals, p.Goals)
	writeBody(&b, "# ", secSkills, p.Skills)
	writeBody(&b, "# ", secInventory, orPlaceholder(p.Inventory, PlaceholderInventory))
	writeBody(&b, "# ", secQuestLog, orPlaceholder(p.QuestLog, PlaceholderQuestLog))
	writeBody(&b, "# ", secNotes, orPlaceholder(p.Notes, PlaceholderNotes))
	writeBody(&b, "# ", secRelationships, p.Relationships)
	writeImage(&b, "# ", "Avatar", p.ImagePath)
	return b.String()
}

type kv struct {
	key, value string
}

func fields(pairs ...kv) []kv {
	out := pairs[:0:0]
	for _, p := range pairs {
		if p.value != "" {
			out = append(out, p)
		}
	}
	return out
}

// idOverride records the id only when it can no longer be derived from the
// name, which happens after a rename.
func idOverride(id, name string) kv {
	if id == "" || id == Slugify(name) {
		return kv{}
	}
	return kv{fieldID, id}
}

func writeFields(b *strings.Builder, title string, pairs []kv) {
	if len(pairs) == 0 {
		return
	}
	b.WriteString("### " + title + "\n")
	for _, p := range pairs {
		b.WriteString("- **" + p.key + "**: " + oneLine(p.value) + "\n")
	}
	b.WriteString("\n")
}

func writeBody(b *strings.Builder, prefix, title, body string) {
	body = strings.TrimRight(body, " \t\r\n")
	if body == "" {
		return
	}
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		lines[i] = escapeLine(l)
	}
	b.WriteString(prefix + title + "\n" + strings.Join(lines, "\n") + "\n\n")
}

func writeImage(b *strings.Builder, prefix, alt, path string) {
	if path == "" {
		return
	}
	b.WriteString(prefix + secImage + "\n![" + oneLine(alt) + "](" + path + ")\n\n")
}

func orPlaceholder(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

// oneLine flattens values that must stay on a single line.
func oneLine(s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Join(strings.Fields(s), " ")
}
