// Package common defines shared constants and sentinel errors used across
// the server and viewer layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound    = errors.New("not found")
	ErrDuplicateID = errors.New("duplicate id")

	// Service-level errors.
	ErrValidation = errors.New("missing required fields")
	ErrStorage    = errors.New("storage error")

	// Blob-specific errors.
	ErrObjectExists = errors.New("object already exists")
)
