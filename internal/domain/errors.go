package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrEmailTaken         = errors.New("already exist")
	ErrParentNotFound     = errors.New("parent not found")
	ErrParentNotAFolder   = errors.New("parent is not a folder")
	ErrFolderHasNoContent = errors.New("a folder doesn't have content")
	ErrContentNotFound    = errors.New("content not found")
)

// ValidationError reports a missing or invalid request field. Controllers
// map it to a 400 response carrying a single-field error message.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("Missing %s", e.Field)
}

func NewValidationError(field string) error {
	return ValidationError{Field: field}
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
