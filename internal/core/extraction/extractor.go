// Package extraction splits narrative-model output into the narrative shown
// to the player and the document updates it carries.
package extraction

import (
	"strings"

	"github.com/agenthands/chronicle/internal/core/model"
)

const (
	narrativeOpen  = "[NARRATIVE]"
	narrativeClose = "[/NARRATIVE]"
	updateClose    = "[/UPDATE]"
)

// UpdateTargets are the only documents an update tag may address, in probe
// order.
var UpdateTargets = []string{"plot.md", "context.md", "player.md", "characters.md", "locations.md"}

// IsUpdateTarget reports whether name is a whitelisted update target.
func IsUpdateTarget(name string) bool {
	for _, t := range UpdateTargets {
		if t == name {
			return true
		}
	}
	return false
}

// Result is a parsed model response.
type Result struct {
	Narrative string
	Updates   []model.ContextUpdate
}

// Parse extracts both the narrative and the updates.
func Parse(response string) Result {
	return Result{
		Narrative: ExtractNarrative(response),
		Updates:   ExtractUpdates(response),
	}
}

// ExtractNarrative returns the text between the first [NARRATIVE] and the
// first [/NARRATIVE] after it, or "" when either tag is missing.
func ExtractNarrative(response string) string {
	return findSection(response, narrativeOpen, narrativeClose)
}

// ExtractUpdates probes once per whitelisted file, so at most one update per
// file is recognised. Empty updates are dropped.
func ExtractUpdates(response string) []model.ContextUpdate {
	var updates []model.ContextUpdate
	for _, name := range UpdateTargets {
		content := findSection(response, "[UPDATE:"+name+"]", updateClose)
		if content == "" {
			continue
		}
		updates = append(updates, model.ContextUpdate{Filename: name, Content: content})
	}
	return updates
}

// findSection trims line breaks, not general whitespace, from the span.
func findSection(response, open, close string) string {
	start := strings.Index(response, open)
	if start < 0 {
		return ""
	}
	start += len(open)
	end := strings.Index(response[start:], close)
	if end < 0 {
		return ""
	}
	return strings.Trim(response[start:start+end], "\r\n")
}
