package comments

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Comment is a discussion entry under a post. Comments carry no state
// machine; authorization is author-or-reviewer and the referenced post must
// be visible to the caller.
type Comment struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	PostID    uuid.UUID  `json:"postId" db:"post_id"`
	Author    string     `json:"author" db:"author"`
	Content   string     `json:"content" db:"content"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// IsAuthor compares an identity against the comment author,
// case-insensitively.
func (c *Comment) IsAuthor(user string) bool {
	return user != "" && strings.EqualFold(user, c.Author)
}

// CreateCommentRequest is the input for creating or editing a comment.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=1200"`
}

// PostSnapshot is the read copy of a post fetched from the post service for
// the visibility check.
type PostSnapshot struct {
	ID     uuid.UUID
	Title  string
	Author string
	Status string
}
