package posts

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic interface for the post workflow.
// It owns every status transition; other services only read posts or hand
// back decisions.
type Service interface {
	// Create constructs a new DRAFT post for the given author.
	Create(ctx context.Context, req CreatePostRequest, author string) (*Post, error)

	// Edit updates title and content while the post is DRAFT or REJECTED.
	// Only the author may edit.
	Edit(ctx context.Context, postID uuid.UUID, req EditPostRequest, user string) (*Post, error)

	// SubmitForReview moves a DRAFT post to PENDING_REVIEW and notifies the
	// review service. The local status change is committed first; a failed
	// downstream call is logged, not rolled back.
	SubmitForReview(ctx context.Context, postID uuid.UUID, user string) (*Post, error)

	// GetByID returns the post if it is PUBLISHED, or if the caller is the
	// author or a trusted service identity. Otherwise ErrForbidden.
	GetByID(ctx context.Context, postID uuid.UUID, user string) (*Post, error)

	// ListPublished returns PUBLISHED posts matching the filter,
	// newest first.
	ListPublished(ctx context.Context, filter ListPublishedFilter) ([]*Post, error)

	// ApplyDecision finalizes a review outcome delivered over the decision
	// channel. Unknown decisions and unknown posts are logged and dropped;
	// re-delivery of an already-applied decision is a no-op.
	ApplyDecision(ctx context.Context, postID uuid.UUID, decision string) error

	// UpdateStatus is the direct-call decision variant: the review service
	// PUTs the new status instead of publishing an event. Transitions are
	// validated against the same graph as ApplyDecision.
	UpdateStatus(ctx context.Context, postID uuid.UUID, newStatus Status) error
}

// Repository defines the data access interface for posts.
type Repository interface {
	Create(ctx context.Context, post *Post) error

	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)

	// Update persists title, content, status and updated_at.
	Update(ctx context.Context, post *Post) error

	// ListPublished returns PUBLISHED posts matching the filter, ordered by
	// creation date descending.
	ListPublished(ctx context.Context, filter ListPublishedFilter) ([]*Post, error)

	// UpdateStatusWhere atomically sets the status to target iff the current
	// status is one of allowedFrom. Returns ErrNotFound if the post does not
	// exist and ErrStatusConflict if a concurrent caller changed the status
	// first. This is the synchronization point for racing submit/decision
	// calls on the same post.
	UpdateStatusWhere(ctx context.Context, id uuid.UUID, allowedFrom []Status, target Status) error
}

// ReviewSubmitter kicks off the review workflow on the review service.
// Implemented by the HTTP client in internal/clients.
type ReviewSubmitter interface {
	SubmitForReview(ctx context.Context, sub ReviewSubmission) error
}
