package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the unit for a key was never created.
	ErrNotFound = errors.New("not found")
	// ErrCorrupt matches any *CorruptError.
	ErrCorrupt = errors.New("corrupt record")
)

// CorruptError reports a unit that exists but cannot be decoded.
type CorruptError struct {
	ID  string
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt record %q: %v", e.ID, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

func (e *CorruptError) Is(target error) bool { return target == ErrCorrupt }

// ValidationError reports caller-supplied data that breaks a required-field
// or range constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
