package comments

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic interface for comments.
type Service interface {
	// Create adds a comment to a post that is visible to the caller.
	Create(ctx context.Context, postID uuid.UUID, user string, req CreateCommentRequest) (*Comment, error)

	// ListForPost returns all comments on a post in creation order,
	// oldest first. The post must be visible to the caller.
	ListForPost(ctx context.Context, postID uuid.UUID, user string) ([]*Comment, error)

	// Edit updates a comment's content. Allowed for the comment author and
	// the reviewer identity.
	Edit(ctx context.Context, commentID uuid.UUID, user string, req CreateCommentRequest) (*Comment, error)

	// Delete removes a comment. Allowed for the comment author and the
	// reviewer identity.
	Delete(ctx context.Context, commentID uuid.UUID, user string) error
}

// Repository defines the data access interface for comments.
type Repository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*Comment, error)
	Update(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostGateway checks post visibility through the post service read API with
// the caller's identity. Implemented by the HTTP client in internal/clients.
type PostGateway interface {
	// GetPost returns ErrPostNotVisible when the post is missing or the
	// caller may not see it.
	GetPost(ctx context.Context, postID uuid.UUID, viewer string) (*PostSnapshot, error)
}
