package services

import "errors"

// Domain error kinds. Handlers pick the HTTP status with errors.Is instead
// of matching on message text.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
	ErrInvalid  = errors.New("invalid argument")
)
