package store

import (
	"fmt"
	"strings"

	"github.com/agenthands/chronicle/internal/core/markdown"
	"github.com/agenthands/chronicle/internal/core/model"
)

// MergePolicy decides how an update fragment is merged into a document.
type MergePolicy string

const (
	// MergeAppend appends the fragment after a newline. Applying the same
	// update twice duplicates it.
	MergeAppend MergePolicy = "append"
	// MergeReplaceSection replaces level-1 sections with the same title.
	MergeReplaceSection MergePolicy = "replace_section"
	// MergeUpsertEntry replaces roster entries with the same id and falls
	// back to MergeReplaceSection for the other documents.
	MergeUpsertEntry MergePolicy = "upsert_entry"
)

// ParseMergePolicy maps a configuration value to a policy. The empty string
// selects MergeAppend.
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch p := MergePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return MergeAppend, nil
	case MergeAppend, MergeReplaceSection, MergeUpsertEntry:
		return p, nil
	default:
		return "", fmt.Errorf("unknown merge policy %q", s)
	}
}

// Merge combines the current document text with an update fragment.
func (p MergePolicy) Merge(file, current, fragment string) string {
	switch p {
	case MergeReplaceSection:
		return markdown.Splice(current, fragment, 1, nil)
	case MergeUpsertEntry:
		if file == DocCharacters || file == DocLocations {
			return markdown.Splice(current, fragment, 2, markdown.Slugify)
		}
		return markdown.Splice(current, fragment, 1, nil)
	default:
		return markdown.AppendFragment(current, fragment)
	}
}

// ApplyUpdates merges each update into its document, in order. Updates for
// files outside the document set are skipped. A missing document is treated
// as empty.
func (s *Store) ApplyUpdates(updates []model.ContextUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyUpdates(updates)
}

func (s *Store) applyUpdates(updates []model.ContextUpdate) error {
	for _, u := range updates {
		if !IsDocument(u.Filename) {
			s.logger.Warn("skipping update for unknown document", "file", u.Filename)
			continue
		}
		current, err := s.read(u.Filename)
		if err != nil {
			return err
		}
		if err := s.write(u.Filename, s.policy.Merge(u.Filename, current, u.Content)); err != nil {
			return err
		}
		s.logger.Debug("applied update", "file", u.Filename, "bytes", len(u.Content), "policy", string(s.policy))
	}
	return nil
}
