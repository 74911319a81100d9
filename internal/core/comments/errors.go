package comments

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a comment does not exist
	ErrNotFound = errors.New("comment not found")

	// ErrForbidden is returned when the caller is neither the comment
	// author nor the reviewer identity
	ErrForbidden = errors.New("not allowed to modify this comment")

	// ErrPostNotVisible is returned when the referenced post is missing or
	// not visible to the caller according to the post service
	ErrPostNotVisible = errors.New("post not found or not visible")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrPostNotVisible)
}

// IsForbidden checks if error is an authorization error
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}
