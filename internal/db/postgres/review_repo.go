package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"Editorial/internal/core/reviews"
)

type postgresReviewRepo struct {
	db *sql.DB
}

// NewReviewRepository creates a new PostgreSQL review repository
func NewReviewRepository(db *sql.DB) reviews.Repository {
	return &postgresReviewRepo{db: db}
}

// EnsurePending inserts a PENDING review if none exists for the post. The
// unique index on post_id makes this idempotent under concurrent submits.
func (r *postgresReviewRepo) EnsurePending(ctx context.Context, postID uuid.UUID) (*reviews.Review, error) {
	query := `
		INSERT INTO reviews (id, post_id, status, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (post_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, uuid.New(), postID, reviews.StatusPending); err != nil {
		return nil, fmt.Errorf("failed to ensure pending review: %w", err)
	}

	return r.GetByPostID(ctx, postID)
}

func (r *postgresReviewRepo) GetByPostID(ctx context.Context, postID uuid.UUID) (*reviews.Review, error) {
	query := `
		SELECT id, post_id, reviewer_id, status, rejection_comment, created_at, decided_at
		FROM reviews
		WHERE post_id = $1
	`

	var review reviews.Review
	var reviewerID, comment sql.NullString
	var decidedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, postID).Scan(
		&review.ID, &review.PostID, &reviewerID, &review.Status,
		&comment, &review.CreatedAt, &decidedAt,
	)
	if err == sql.ErrNoRows {
		return nil, reviews.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review by post id: %w", err)
	}

	if reviewerID.Valid {
		review.ReviewerID = reviewerID.String
	}
	if comment.Valid {
		review.RejectionComment = &comment.String
	}
	if decidedAt.Valid {
		review.DecidedAt = &decidedAt.Time
	}

	return &review, nil
}

// Decide performs the PENDING -> terminal transition as one conditional
// UPDATE. Concurrent reviewers race on the status predicate; the loser gets
// ErrAlreadyDecided.
func (r *postgresReviewRepo) Decide(ctx context.Context, postID uuid.UUID, reviewerID string, status reviews.Status, rejectionComment *string, decidedAt time.Time) (*reviews.Review, error) {
	query := `
		UPDATE reviews
		SET reviewer_id = $2, status = $3, rejection_comment = $4, decided_at = $5
		WHERE post_id = $1 AND status = $6
		RETURNING id, post_id, reviewer_id, status, rejection_comment, created_at, decided_at
	`

	var review reviews.Review
	var storedReviewer, storedComment sql.NullString
	var storedDecidedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query,
		postID, reviewerID, status, rejectionComment, decidedAt, reviews.StatusPending,
	).Scan(
		&review.ID, &review.PostID, &storedReviewer, &review.Status,
		&storedComment, &review.CreatedAt, &storedDecidedAt,
	)
	if err == sql.ErrNoRows {
		return nil, reviews.ErrAlreadyDecided
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record review decision: %w", err)
	}

	if storedReviewer.Valid {
		review.ReviewerID = storedReviewer.String
	}
	if storedComment.Valid {
		review.RejectionComment = &storedComment.String
	}
	if storedDecidedAt.Valid {
		review.DecidedAt = &storedDecidedAt.Time
	}

	return &review, nil
}
