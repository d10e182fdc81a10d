package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, tag from another team).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when an insert collides with an existing row that
// the caller should know about (duplicate tag name within a team).
// Handlers should map this to HTTP 400.
var ErrConflict = errors.New("conflict")
