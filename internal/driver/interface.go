// Package driver abstracts the file system the campaign store lives on.
//
// Paths are slash-separated and relative to the driver root.
package driver

import (
	"errors"
	"io/fs"
)

type Driver interface {
	// ReadFile returns an error wrapping fs.ErrNotExist for missing files.
	ReadFile(path string) ([]byte, error)
	// WriteFile replaces the file atomically, creating parent directories.
	WriteFile(path string, data []byte) error
	Exists(path string) bool
	MkdirAll(path string) error
	// ListDirs returns the names of the immediate subdirectories of path.
	ListDirs(path string) ([]string, error)
	RemoveAll(path string) error
	Close() error
}

// IsNotExist reports whether err means the file is absent.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
