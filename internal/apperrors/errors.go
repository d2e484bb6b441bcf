package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError reports input that violates a field-level rule. It is
// operational: callers translate it to a 400-equivalent response.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation builds a ValidationError for the given field.
func NewValidation(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// NotFoundError reports a reference to a missing aggregate by id or key.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Key)
}

// NewNotFound builds a NotFoundError naming the resource and its key.
func NewNotFound(resource, key string) NotFoundError {
	return NotFoundError{Resource: resource, Key: key}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
