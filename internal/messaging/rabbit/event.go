package rabbit

import "github.com/google/uuid"

// PostReviewedEvent is the wire payload of a review decision. It is
// transient: produced by exactly one review transition, consumed by the post
// service, never persisted.
type PostReviewedEvent struct {
	PostID   uuid.UUID `json:"postId"`
	Decision string    `json:"decision"`
}
