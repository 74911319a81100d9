package comments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type commentService struct {
	repo             Repository
	posts            PostGateway
	reviewerIdentity string
	logger           *slog.Logger
}

// NewCommentService creates a new comment service. reviewerIdentity is the
// trusted identity allowed to edit or delete any comment.
func NewCommentService(repo Repository, posts PostGateway, reviewerIdentity string, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		repo:             repo,
		posts:            posts,
		reviewerIdentity: reviewerIdentity,
		logger:           logger,
	}
}

func (s *commentService) Create(ctx context.Context, postID uuid.UUID, user string, req CreateCommentRequest) (*Comment, error) {
	if user == "" {
		return nil, NewValidationError("user", "user identity is required")
	}
	content := strings.TrimSpace(req.Content)
	if err := validate.Struct(CreateCommentRequest{Content: content}); err != nil {
		return nil, NewValidationError("content", "content is required and limited to 1200 characters")
	}

	if err := s.checkPostVisible(ctx, postID, user); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:        uuid.New(),
		PostID:    postID,
		Author:    user,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.Info("comment created", "commentId", comment.ID, "postId", postID, "author", user)
	return comment, nil
}

func (s *commentService) ListForPost(ctx context.Context, postID uuid.UUID, user string) ([]*Comment, error) {
	if err := s.checkPostVisible(ctx, postID, user); err != nil {
		return nil, err
	}
	return s.repo.ListByPost(ctx, postID)
}

func (s *commentService) Edit(ctx context.Context, commentID uuid.UUID, user string, req CreateCommentRequest) (*Comment, error) {
	content := strings.TrimSpace(req.Content)
	if err := validate.Struct(CreateCommentRequest{Content: content}); err != nil {
		return nil, NewValidationError("content", "content is required and limited to 1200 characters")
	}

	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !s.canModify(comment, user) {
		return nil, ErrForbidden
	}

	now := time.Now().UTC()
	comment.Content = content
	comment.UpdatedAt = &now

	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment %s: %w", commentID, err)
	}

	s.logger.Info("comment updated", "commentId", commentID, "user", user)
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, commentID uuid.UUID, user string) error {
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !s.canModify(comment, user) {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment %s: %w", commentID, err)
	}

	s.logger.Info("comment deleted", "commentId", commentID, "user", user)
	return nil
}

func (s *commentService) canModify(comment *Comment, user string) bool {
	return comment.IsAuthor(user) || (user != "" && strings.EqualFold(user, s.reviewerIdentity))
}

func (s *commentService) checkPostVisible(ctx context.Context, postID uuid.UUID, user string) error {
	if s.posts == nil {
		return nil
	}
	if _, err := s.posts.GetPost(ctx, postID, user); err != nil {
		if errors.Is(err, ErrPostNotVisible) {
			return fmt.Errorf("%w: %s", ErrPostNotVisible, postID)
		}
		return fmt.Errorf("failed to check post visibility for %s: %w", postID, err)
	}
	return nil
}
