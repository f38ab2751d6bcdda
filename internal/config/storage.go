package config

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// StorageConfig holds settings for the game archive.
type StorageConfig struct {
	// Dir is the archive directory; empty disables archiving.
	Dir string

	// InMemory keeps the archive in memory only. Used by tests.
	InMemory bool

	// List prints the archived games instead of playing.
	List bool
}

// Enabled reports whether an archive should be opened.
func (s *StorageConfig) Enabled() bool {
	return s.Dir != "" || s.InMemory
}

// Validate checks that the storage configuration is valid.
func (s *StorageConfig) Validate() error {
	if s.List && !s.Enabled() {
		return invalid("listing games needs an archive directory")
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, errors.ErrInvalidConfig)...)
}
