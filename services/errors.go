package services

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned when the requested project, post or parent does not exist
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned for input that cannot be stored
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateSlug is returned when a slug is already used by another entry
	ErrDuplicateSlug = errors.New("slug already taken")
)
