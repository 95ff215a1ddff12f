package domain

import "errors"

// Error kinds returned by workspace operations.
// Callers match them with errors.Is; the wrapped message carries the offending id or name.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("duplicate name")
	ErrInvalidInput  = errors.New("invalid input")

	// ErrSaveFailed is returned when a mutation was applied in memory
	// but could not be written to the durable store.
	ErrSaveFailed = errors.New("save failed")
)
