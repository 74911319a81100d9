package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"Editorial/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (id, title, content, author, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Content, post.Author, post.Status,
		post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

func (r *postgresPostRepo) GetByID(ctx context.Context, id uuid.UUID) (*posts.Post, error) {
	query := `
		SELECT id, title, content, author, status, created_at, updated_at
		FROM posts
		WHERE id = $1
	`

	var post posts.Post
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Content, &post.Author, &post.Status,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return &post, nil
}

func (r *postgresPostRepo) Update(ctx context.Context, post *posts.Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3, status = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Content, post.Status, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return posts.ErrNotFound
	}
	return nil
}

// ListPublished builds the filtered listing dynamically: case-insensitive
// substring matches on content and author, inclusive creation-date range,
// newest first.
func (r *postgresPostRepo) ListPublished(ctx context.Context, filter posts.ListPublishedFilter) ([]*posts.Post, error) {
	builder := sq.Select("id", "title", "content", "author", "status", "created_at", "updated_at").
		From("posts").
		Where(sq.Eq{"status": posts.StatusPublished}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.Content != "" {
		builder = builder.Where(sq.ILike{"content": "%" + filter.Content + "%"})
	}
	if filter.Author != "" {
		builder = builder.Where(sq.ILike{"author": "%" + filter.Author + "%"})
	}
	if filter.From != nil {
		builder = builder.Where(sq.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		// Inclusive on the creation date: everything before the day after.
		builder = builder.Where(sq.Lt{"created_at": filter.To.AddDate(0, 0, 1)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build published posts query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query published posts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Printf("WARN: failed to close rows: %v", closeErr)
		}
	}()

	var result []*posts.Post
	for rows.Next() {
		var post posts.Post
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Content, &post.Author, &post.Status,
			&post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan published post: %w", err)
		}
		result = append(result, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating published posts: %w", err)
	}

	return result, nil
}

// UpdateStatusWhere is the atomic check-then-act for status transitions:
// the UPDATE only matches while the current status is still one of
// allowedFrom, so concurrent submits or decisions on the same post see at
// most one winner.
func (r *postgresPostRepo) UpdateStatusWhere(ctx context.Context, id uuid.UUID, allowedFrom []posts.Status, target posts.Status) error {
	from := make([]string, len(allowedFrom))
	for i, s := range allowedFrom {
		from[i] = string(s)
	}

	query := `
		UPDATE posts
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)
	`

	result, err := r.db.ExecContext(ctx, query, id, target, pq.Array(from))
	if err != nil {
		return fmt.Errorf("failed to update post status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check status update result: %w", err)
	}
	if affected == 1 {
		return nil
	}

	// No row matched: distinguish a missing post from a lost race.
	var current string
	err = r.db.QueryRowContext(ctx, `SELECT status FROM posts WHERE id = $1`, id).Scan(&current)
	if err == sql.ErrNoRows {
		return posts.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read post status after conflict: %w", err)
	}
	return posts.ErrStatusConflict
}
