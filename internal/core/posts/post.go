package posts

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a post.
// The transition graph is fixed:
//
//	DRAFT -> PENDING_REVIEW -> PUBLISHED
//	                        -> REJECTED -> PENDING_REVIEW (resubmission)
//
// Edits never change status; they are only permitted in DRAFT or REJECTED.
type Status string

const (
	StatusDraft         Status = "DRAFT"
	StatusPendingReview Status = "PENDING_REVIEW"
	StatusPublished     Status = "PUBLISHED"
	StatusRejected      Status = "REJECTED"
)

// transitions is the single source of truth for status legality.
// All callers go through CanTransitionTo instead of scattering status checks.
var transitions = map[Status][]Status{
	StatusDraft:         {StatusPendingReview},
	StatusPendingReview: {StatusPublished, StatusRejected},
	StatusRejected:      {StatusPendingReview},
	StatusPublished:     {},
}

// ParseStatus converts a wire string into a Status, case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusDraft:
		return StatusDraft, nil
	case StatusPendingReview:
		return StatusPendingReview, nil
	case StatusPublished:
		return StatusPublished, nil
	case StatusRejected:
		return StatusRejected, nil
	}
	return "", fmt.Errorf("unknown post status: %q", s)
}

// CanTransitionTo reports whether moving from s to target is legal.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Editable reports whether a post in this status accepts author edits.
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusRejected
}

// Post is the reviewable content unit. The post service owns all writes;
// the review and comment services only ever hold read copies fetched over HTTP.
type Post struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Author    string    `json:"author" db:"author"`
	Status    Status    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// IsAuthor compares an identity against the post author, case-insensitively.
func (p *Post) IsAuthor(user string) bool {
	return user != "" && strings.EqualFold(user, p.Author)
}

// CreatePostRequest is the input for creating a new draft.
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=100000"`
}

// EditPostRequest is the input for editing a draft or rejected post.
type EditPostRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=100000"`
}

// ListPublishedFilter holds the optional filters for the published listing.
// Content and Author are case-insensitive substring matches; the date range
// is inclusive on the creation date.
type ListPublishedFilter struct {
	Content string
	Author  string
	From    *time.Time
	To      *time.Time
}

// ReviewSubmission is the payload sent to the review service when a post
// enters PENDING_REVIEW.
type ReviewSubmission struct {
	PostID uuid.UUID `json:"postId"`
	Author string    `json:"author"`
	Title  string    `json:"title"`
}
