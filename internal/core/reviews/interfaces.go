package reviews

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service defines the business logic interface for the review workflow.
type Service interface {
	// Submit is the review intake: it eagerly creates a PENDING review for
	// the submitted post. Idempotent, a duplicate submission is a no-op.
	Submit(ctx context.Context, req SubmitRequest) (*Review, error)

	// Approve records an APPROVED decision and announces it to the post
	// service. Fails with an invalid state error if the review is already
	// decided.
	Approve(ctx context.Context, postID uuid.UUID, reviewerID string) (*Review, error)

	// Reject records a REJECTED decision with a mandatory comment and
	// announces it. Fails with an invalid state error if the comment is
	// blank or the review is already decided.
	Reject(ctx context.Context, postID uuid.UUID, reviewerID, rejectionComment string) (*Review, error)

	// GetByPostID returns the review for a post, if any.
	GetByPostID(ctx context.Context, postID uuid.UUID) (*Review, error)
}

// Repository defines the data access interface for reviews.
type Repository interface {
	// EnsurePending creates a PENDING review for the post if none exists
	// and returns the current row either way.
	EnsurePending(ctx context.Context, postID uuid.UUID) (*Review, error)

	GetByPostID(ctx context.Context, postID uuid.UUID) (*Review, error)

	// Decide atomically moves the review from PENDING to the given terminal
	// status. Returns ErrAlreadyDecided if the review is no longer PENDING,
	// so two racing reviewers cannot both succeed.
	Decide(ctx context.Context, postID uuid.UUID, reviewerID string, status Status, rejectionComment *string, decidedAt time.Time) (*Review, error)
}

// PostGateway fetches posts from the post service with the reviewer
// identity. Implemented by the HTTP client in internal/clients.
type PostGateway interface {
	// GetPost returns ErrPostNotFound when the post is missing or not
	// visible, and ErrPostLookupFailed on transport errors.
	GetPost(ctx context.Context, postID uuid.UUID) (*PostSnapshot, error)
}

// DecisionAnnouncer delivers a review outcome back to the post service.
// Two implementations exist: the decision channel publisher and the direct
// status update call. They are interchangeable deployment variants.
type DecisionAnnouncer interface {
	Announce(ctx context.Context, decision Decision) error
}

// StatusUpdater is the narrow surface of the post service client needed by
// the direct-call announcer variant.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, postID uuid.UUID, status string) error
}
