package errors

import (
	"fmt"
)

var (
	ErrNotFound           = fmt.Errorf("not found")
	ErrDuplicateGST       = fmt.Errorf("duplicate GST number")
	ErrInvalidInput       = fmt.Errorf("invalid input")
	ErrNoFieldsToUpdate   = fmt.Errorf("no fields to update")
	ErrStorageUnavailable = fmt.Errorf("storage unavailable")
)

// FieldError is a validation failure on a single field. It unwraps to
// ErrInvalidInput so callers can classify it, while Error() stays the exact
// user-facing message shown by the UI.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

func (e *FieldError) Unwrap() error { return ErrInvalidInput }

// Invalid constructs a FieldError for the named field.
func Invalid(field, message string) error {
	return &FieldError{Field: field, Message: message}
}
