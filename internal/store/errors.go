package store

import (
	"errors"
	"fmt"
)

// Sentinel errors; match with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation failed")
)

// ConflictError reports a record whose id is already taken.
type ConflictError struct {
	ResourceType string
	ResourceID   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s '%s' already exists", e.ResourceType, e.ResourceID)
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s '%s': %w", kind, id, ErrNotFound)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
