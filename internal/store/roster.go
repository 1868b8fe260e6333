package store

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/agenthands/chronicle/internal/core/markdown"
	"github.com/agenthands/chronicle/internal/core/model"
)

// roster describes one entry document and how its records map onto it.
type roster[T any] struct {
	kind      string
	file      string
	category  string
	parse     func(string) []T
	serialize func([]T) string
	id        func(*T) *string
	name      func(*T) *string
}

var characters = roster[model.Character]{
	kind:      "character",
	file:      DocCharacters,
	category:  model.ImageCharacters,
	parse:     markdown.ParseCharacters,
	serialize: markdown.SerializeCharacters,
	id:        func(c *model.Character) *string { return &c.ID },
	name:      func(c *model.Character) *string { return &c.Name },
}

var locations = roster[model.Location]{
	kind:      "location",
	file:      DocLocations,
	category:  model.ImageLocations,
	parse:     markdown.ParseLocations,
	serialize: markdown.SerializeLocations,
	id:        func(l *model.Location) *string { return &l.ID },
	name:      func(l *model.Location) *string { return &l.Name },
}

func (r roster[T]) load(s *Store) ([]T, error) {
	text, err := s.read(r.file)
	if err != nil {
		return nil, err
	}
	return r.parse(text), nil
}

func (r roster[T]) save(s *Store, records []T) error {
	return s.write(r.file, r.serialize(records))
}

func (r roster[T]) index(records []T, id string) int {
	for i := range records {
		if *r.id(&records[i]) == id {
			return i
		}
	}
	return -1
}

func (r roster[T]) validateName(rec *T) error {
	name := r.name(rec)
	*name = strings.TrimSpace(*name)
	if err := validation.Validate(*name, validation.Required, validation.Length(1, 200)); err != nil {
		return fmt.Errorf("%w: name: %v", ErrValidation, err)
	}
	return nil
}

func (r roster[T]) list(s *Store) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := r.load(s)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (r roster[T]) get(s *Store, id string) (T, error) {
	var zero T
	records, err := r.list(s)
	if err != nil {
		return zero, err
	}
	i := r.index(records, id)
	if i < 0 {
		return zero, notFound(r.kind, id)
	}
	return records[i], nil
}

// create assigns the record the slug of its name as id and rejects ids that
// are already taken.
func (r roster[T]) create(s *Store, rec T) (T, error) {
	var zero T
	if err := r.validateName(&rec); err != nil {
		return zero, err
	}
	id := markdown.Slugify(*r.name(&rec))
	if id == "" {
		return zero, invalid("name %q has no letters or digits", *r.name(&rec))
	}
	*r.id(&rec) = id

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := r.load(s)
	if err != nil {
		return zero, err
	}
	if r.index(records, id) >= 0 {
		return zero, &ConflictError{ResourceType: r.kind, ResourceID: id}
	}
	if err := r.save(s, append(records, rec)); err != nil {
		return zero, err
	}
	s.logger.Info("record created", "kind", r.kind, "id", id)
	return rec, nil
}

// update replaces the record in place. The id never changes, even when the
// name does.
func (r roster[T]) update(s *Store, id string, rec T) (T, error) {
	var zero T
	if err := r.validateName(&rec); err != nil {
		return zero, err
	}
	*r.id(&rec) = id

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := r.load(s)
	if err != nil {
		return zero, err
	}
	i := r.index(records, id)
	if i < 0 {
		return zero, notFound(r.kind, id)
	}
	records[i] = rec
	if err := r.save(s, records); err != nil {
		return zero, err
	}
	s.logger.Info("record updated", "kind", r.kind, "id", id)
	return rec, nil
}

// remove deletes the record and any image stored for it.
func (r roster[T]) remove(s *Store, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := r.load(s)
	if err != nil {
		return err
	}
	i := r.index(records, id)
	if i < 0 {
		return notFound(r.kind, id)
	}
	if err := r.save(s, append(records[:i], records[i+1:]...)); err != nil {
		return err
	}
	if validateImageKey(r.category, id) == nil {
		if err := s.deleteImage(r.category, id); err != nil {
			s.logger.Warn("failed to remove image of deleted record", "kind", r.kind, "id", id, "error", err)
		}
	}
	s.logger.Info("record deleted", "kind", r.kind, "id", id)
	return nil
}

// setImage points the record's image link at path.
func (r roster[T]) setImage(s *Store, id, path string, image func(*T) *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := r.load(s)
	if err != nil {
		return err
	}
	i := r.index(records, id)
	if i < 0 {
		return notFound(r.kind, id)
	}
	*image(&records[i]) = path
	return r.save(s, records)
}

func (s *Store) Characters() ([]model.Character, error) { return characters.list(s) }

func (s *Store) Character(id string) (model.Character, error) { return characters.get(s, id) }

func (s *Store) CreateCharacter(c model.Character) (model.Character, error) {
	return characters.create(s, c)
}

func (s *Store) UpdateCharacter(id string, c model.Character) (model.Character, error) {
	return characters.update(s, id, c)
}

func (s *Store) DeleteCharacter(id string) error { return characters.remove(s, id) }

// SetCharacterImage links a stored image into the character's entry.
func (s *Store) SetCharacterImage(id, path string) error {
	return characters.setImage(s, id, path, func(c *model.Character) *string { return &c.ImagePath })
}

func (s *Store) Locations() ([]model.Location, error) { return locations.list(s) }

func (s *Store) Location(id string) (model.Location, error) { return locations.get(s, id) }

func (s *Store) CreateLocation(l model.Location) (model.Location, error) {
	return locations.create(s, l)
}

func (s *Store) UpdateLocation(id string, l model.Location) (model.Location, error) {
	return locations.update(s, id, l)
}

func (s *Store) DeleteLocation(id string) error { return locations.remove(s, id) }

// SetLocationImage links a stored image into the location's entry.
func (s *Store) SetLocationImage(id, path string) error {
	return locations.setImage(s, id, path, func(l *model.Location) *string { return &l.ImagePath })
}
