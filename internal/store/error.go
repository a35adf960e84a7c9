package store

import "errors"

var (
	// -- Resource State --
	ErrNotFound = errors.New("key not found")
	ErrCorrupt  = errors.New("stored value is corrupt")

	// -- Operation Failures --
	// ErrNotPersisted is wrapped by mutations that applied in memory but
	// could not be written; the change lasts for this session only.
	ErrNotPersisted = errors.New("change not persisted")
	ErrInvalidKey   = errors.New("invalid store key")
)
