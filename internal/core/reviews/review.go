package reviews

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a review. A review is created PENDING and
// transitions exactly once to APPROVED or REJECTED.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Decided reports whether the review has reached a terminal state.
func (s Status) Decided() bool {
	return s == StatusApproved || s == StatusRejected
}

// Review is the reviewer's decision record against one post.
// At most one non-superseded review exists per post.
type Review struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	PostID           uuid.UUID  `json:"postId" db:"post_id"`
	ReviewerID       string     `json:"reviewerId,omitempty" db:"reviewer_id"`
	Status           Status     `json:"status" db:"status"`
	RejectionComment *string    `json:"rejectionComment,omitempty" db:"rejection_comment"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	DecidedAt        *time.Time `json:"decidedAt,omitempty" db:"decided_at"`
}

// SubmitRequest is the review intake payload sent by the post service when a
// post enters PENDING_REVIEW.
type SubmitRequest struct {
	PostID uuid.UUID `json:"postId" validate:"required"`
	Author string    `json:"author" validate:"required"`
	Title  string    `json:"title" validate:"required"`
}

// Decision is the outcome announced back to the post service, either over
// the decision channel or as a direct status update call.
type Decision struct {
	PostID  uuid.UUID
	Outcome string // "APPROVED" or "REJECTED"
}

// PostSnapshot is the read copy of a post fetched from the post service.
type PostSnapshot struct {
	ID      uuid.UUID
	Title   string
	Author  string
	Status  string
	Content string
}
