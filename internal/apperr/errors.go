// Package apperr holds the error categories shared by every domain package.
// Domain errors wrap one of these so transports can map them without knowing the domain.
package apperr

import "errors"

var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrUnavailable    = errors.New("collaborator unavailable")
	ErrPartialCascade = errors.New("partial cascade failure")
)
