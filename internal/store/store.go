// Package store keeps one campaign's documents, history, metadata and images
// in a directory and exposes read, compose and update operations over them.
//
// A Store is a handle for a single campaign. Every operation that reads and
// then rewrites a file holds the handle's lock for the whole cycle, so two
// requests against the same handle never lose each other's writes. Separate
// processes sharing a directory are not coordinated.
package store

import (
	"fmt"
	"log/slog"
	"path"
	"sync"
	"time"

	"github.com/agenthands/chronicle/internal/driver"
)

// Campaign file names.
const (
	DocPlot       = "plot.md"
	DocContext    = "context.md"
	DocPlayer     = "player.md"
	DocCharacters = "characters.md"
	DocLocations  = "locations.md"
	FileHistory   = "history.json"
	FileMetadata  = "metadata.json"
	DirImages     = "images"
)

// Documents lists the markdown documents of a campaign.
var Documents = []string{DocPlot, DocContext, DocPlayer, DocCharacters, DocLocations}

// IsDocument reports whether name is one of the campaign's markdown documents.
func IsDocument(name string) bool {
	for _, d := range Documents {
		if d == name {
			return true
		}
	}
	return false
}

type Store struct {
	driver driver.Driver
	id     string
	dir    string
	policy MergePolicy
	logger *slog.Logger
	now    func() time.Time

	mu sync.Mutex
}

type Option func(*Store)

// WithMergePolicy selects how narrative updates are merged into documents.
func WithMergePolicy(p MergePolicy) Option {
	return func(s *Store) { s.policy = p }
}

// WithClock overrides the time source used for metadata timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a handle for the campaign stored under dir. The id is recorded
// in metadata when the campaign is initialized.
func New(d driver.Driver, id, dir string, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		driver: d,
		id:     id,
		dir:    dir,
		policy: MergeAppend,
		logger: logger.With("campaign", id),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) ID() string { return s.id }

func (s *Store) Policy() MergePolicy { return s.policy }

func (s *Store) path(parts ...string) string {
	return path.Join(append([]string{s.dir}, parts...)...)
}

// read returns the file content, or "" when the file does not exist.
func (s *Store) read(name string) (string, error) {
	data, err := s.driver.ReadFile(s.path(name))
	if err != nil {
		if driver.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}

// readLenient is read for composition paths that degrade to empty text.
func (s *Store) readLenient(name string) string {
	content, err := s.read(name)
	if err != nil {
		s.logger.Warn("document unreadable, using empty content", "file", name, "error", err)
		return ""
	}
	return content
}

func (s *Store) write(name, content string) error {
	if err := s.driver.WriteFile(s.path(name), []byte(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// ReadDocument returns the raw text of one of the markdown documents.
func (s *Store) ReadDocument(name string) (string, error) {
	if !IsDocument(name) {
		return "", notFound("document", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(name)
}

// WriteDocument replaces the raw text of one of the markdown documents.
func (s *Store) WriteDocument(name, content string) error {
	if !IsDocument(name) {
		return notFound("document", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(name, content)
}

// PlayerState returns player.md as stored.
func (s *Store) PlayerState() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLenient(DocPlayer)
}
