package reviews

import (
	"errors"
	"fmt"
)

var (
	// ErrPostNotFound is returned when the post service reports the post
	// does not exist or is not visible to the reviewer identity
	ErrPostNotFound = errors.New("post not found in post service")

	// ErrPostLookupFailed is returned when the post service could not be
	// reached at all. Kept distinct from ErrPostNotFound so callers and
	// tests can tell a missing post from a transport failure.
	ErrPostLookupFailed = errors.New("post service lookup failed")

	// ErrReviewNotFound is returned when no review exists for a post
	ErrReviewNotFound = errors.New("review not found")

	// ErrAlreadyDecided is returned by the repository when the conditional
	// PENDING -> terminal update matched no row
	ErrAlreadyDecided = errors.New("review already decided")
)

// InvalidStateError reports a violated review precondition, e.g. deciding an
// already-decided review or rejecting without a comment.
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

// IsInvalidState checks if error is a review precondition violation
func IsInvalidState(err error) bool {
	var stateErr *InvalidStateError
	return errors.As(err, &stateErr)
}

// IsPostNotFound checks if error means the post is missing or invisible
func IsPostNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound)
}

// IsPostLookupFailed checks if error means the post service was unreachable
func IsPostLookupFailed(err error) bool {
	return errors.Is(err, ErrPostLookupFailed)
}
