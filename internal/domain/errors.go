package domain

import "errors"

// Errors shared across entities. Entity-specific validation errors live next
// to their entity.
var (
	// ErrValidation marks input that failed validation before reaching an entity.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed.
	ErrInvalidID = errors.New("invalid ID")
)
