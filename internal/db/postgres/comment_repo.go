package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"

	"Editorial/internal/core/comments"
)

type postgresCommentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

func (r *postgresCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, author, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.PostID, comment.Author, comment.Content, comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (r *postgresCommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*comments.Comment, error) {
	query := `
		SELECT id, post_id, author, content, created_at, updated_at
		FROM comments
		WHERE id = $1
	`

	var comment comments.Comment
	var updatedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.PostID, &comment.Author, &comment.Content,
		&comment.CreatedAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, comments.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}

	if updatedAt.Valid {
		comment.UpdatedAt = &updatedAt.Time
	}
	return &comment, nil
}

func (r *postgresCommentRepo) ListByPost(ctx context.Context, postID uuid.UUID) ([]*comments.Comment, error) {
	query := `
		SELECT id, post_id, author, content, created_at, updated_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Printf("WARN: failed to close rows: %v", closeErr)
		}
	}()

	var result []*comments.Comment
	for rows.Next() {
		var comment comments.Comment
		var updatedAt sql.NullTime
		if err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.Author, &comment.Content,
			&comment.CreatedAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		if updatedAt.Valid {
			comment.UpdatedAt = &updatedAt.Time
		}
		result = append(result, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return result, nil
}

func (r *postgresCommentRepo) Update(ctx context.Context, comment *comments.Comment) error {
	query := `
		UPDATE comments
		SET content = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, comment.ID, comment.Content, comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check comment update result: %w", err)
	}
	if affected == 0 {
		return comments.ErrNotFound
	}
	return nil
}

func (r *postgresCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check comment delete result: %w", err)
	}
	if affected == 0 {
		return comments.ErrNotFound
	}
	return nil
}
