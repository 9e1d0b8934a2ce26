package core

import (
	"errors"
	"fmt"
)

// The engine surfaces three kinds of failures. Validation and not-found
// conditions are user-facing; a ComputationError means an internal invariant
// broke and is treated as a defect, not a user error.
type (
	ValidationError struct {
		Reason string
	}

	NotFoundError struct {
		Entity string
		ID     int64
	}

	ComputationError struct {
		Reason string
	}
)

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Reason
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *ComputationError) Error() string {
	return "computation failed: " + e.Reason
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFound builds a NotFoundError for the given entity kind and id.
func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
