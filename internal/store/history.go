package store

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/agenthands/chronicle/internal/core/model"
	"github.com/agenthands/chronicle/internal/wire"
)

const emptyHistory = "[]"

// AppendHistory adds one turn to history.json. The entry is spliced in before
// the final ']' without reparsing the file, so earlier entries are preserved
// byte for byte.
func (s *Store) AppendHistory(player, gm string) error {
	b := wire.NewBuilderSize(len(player) + len(gm) + 32)
	b.BeginObject()
	b.KVString("player", player)
	b.KVString("gm", gm)
	b.EndObject()
	entry := b.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.read(FileHistory)
	if err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		raw = emptyHistory
	}
	end := strings.LastIndexByte(raw, ']')
	if end < 0 {
		return fmt.Errorf("%s is not a JSON array", FileHistory)
	}
	head := raw[:end]
	if !strings.HasSuffix(strings.TrimRight(head, " \t\r\n"), "[") {
		entry = "," + entry
	}
	return s.write(FileHistory, head+entry+raw[end:])
}

// RawHistory returns history.json as stored, or "[]" when it is missing.
func (s *Store) RawHistory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw := s.readLenient(FileHistory)
	if strings.TrimSpace(raw) == "" {
		return emptyHistory
	}
	return raw
}

// History returns the decoded turns. Entries without a player or gm string
// decode with that side empty; a file that is not an array yields no turns.
func (s *Store) History() []model.HistoryEntry {
	parsed := gjson.Parse(s.RawHistory())
	if !parsed.IsArray() {
		return nil
	}
	entries := []model.HistoryEntry{}
	parsed.ForEach(func(_, turn gjson.Result) bool {
		entries = append(entries, model.HistoryEntry{
			Player: turn.Get("player").String(),
			GM:     turn.Get("gm").String(),
		})
		return true
	})
	return entries
}
