package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when a post does not exist
	ErrNotFound = errors.New("post not found")

	// ErrForbidden is returned when the caller is not allowed to act on the post
	ErrForbidden = errors.New("not allowed to access this post")

	// ErrStatusConflict is returned by the repository when a conditional
	// status update matched no row because a concurrent caller won the race
	ErrStatusConflict = errors.New("post status changed concurrently")
)

// InvalidStateError reports a workflow precondition violation, e.g. editing
// a published post or submitting a post that is not a draft.
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}

// NewInvalidState creates a new invalid state error
func NewInvalidState(format string, args ...any) error {
	return &InvalidStateError{Message: fmt.Sprintf(format, args...)}
}

// IsInvalidState checks if error is a workflow precondition violation
func IsInvalidState(err error) bool {
	var stateErr *InvalidStateError
	return errors.As(err, &stateErr)
}

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
	return errors.Is(err, ErrNotFound)
}

// IsForbidden checks if error is an authorization error
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}
