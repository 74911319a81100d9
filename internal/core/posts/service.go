package posts

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

type postService struct {
	repo    Repository
	reviews ReviewSubmitter
	trusted map[string]bool
	logger  *slog.Logger
}

// NewPostService creates a new post workflow service.
// trustedIdentities are service identities (e.g. "internal", "reviewer")
// allowed to read non-published posts. reviews may be nil in tests that do
// not exercise submission.
func NewPostService(repo Repository, reviews ReviewSubmitter, trustedIdentities []string, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	trusted := make(map[string]bool, len(trustedIdentities))
	for _, id := range trustedIdentities {
		trusted[strings.ToLower(id)] = true
	}
	return &postService{
		repo:    repo,
		reviews: reviews,
		trusted: trusted,
		logger:  logger,
	}
}

func (s *postService) Create(ctx context.Context, req CreatePostRequest, author string) (*Post, error) {
	if author == "" {
		return nil, NewValidationError("author", "author is required")
	}
	if err := validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	now := time.Now().UTC()
	post := &Post{
		ID:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		Author:    author,
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created", "postId", post.ID, "author", author)
	return post, nil
}

func (s *postService) Edit(ctx context.Context, postID uuid.UUID, req EditPostRequest, user string) (*Post, error) {
	if err := validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !post.IsAuthor(user) {
		return nil, ErrForbidden
	}
	if !post.Status.Editable() {
		return nil, NewInvalidState("post can only be edited while DRAFT or REJECTED, current status is %s", post.Status)
	}

	post.Title = req.Title
	post.Content = req.Content
	post.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post %s: %w", postID, err)
	}

	s.logger.Info("post updated", "postId", postID, "title", req.Title)
	return post, nil
}

// SubmitForReview commits PENDING_REVIEW locally before calling the review
// service. If the downstream call fails the post stays visibly pending; there
// is no compensation, the review service lazily recovers on the first
// approve/reject call.
func (s *postService) SubmitForReview(ctx context.Context, postID uuid.UUID, user string) (*Post, error) {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !post.IsAuthor(user) {
		return nil, ErrForbidden
	}
	if post.Status != StatusDraft {
		return nil, NewInvalidState("only DRAFT posts can be submitted, current status is %s", post.Status)
	}

	// Conditional update so that concurrent submits on the same draft see at
	// most one winner.
	err = s.repo.UpdateStatusWhere(ctx, postID, []Status{StatusDraft}, StatusPendingReview)
	if err == ErrStatusConflict {
		return nil, NewInvalidState("only DRAFT posts can be submitted, the post was already submitted")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark post %s pending review: %w", postID, err)
	}

	post.Status = StatusPendingReview
	post.UpdatedAt = time.Now().UTC()

	if s.reviews != nil {
		if submitErr := s.reviews.SubmitForReview(ctx, ReviewSubmission{
			PostID: post.ID,
			Author: post.Author,
			Title:  post.Title,
		}); submitErr != nil {
			// The post is already committed as PENDING_REVIEW. The review
			// service recovers lazily on the first decision call.
			s.logger.Warn("review submission call failed, post stays pending",
				"postId", postID, "error", submitErr)
		}
	}

	s.logger.Info("post submitted for review", "postId", postID, "author", user)
	return post, nil
}

func (s *postService) GetByID(ctx context.Context, postID uuid.UUID, user string) (*Post, error) {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.Status == StatusPublished || post.IsAuthor(user) || s.trusted[strings.ToLower(user)] {
		return post, nil
	}

	s.logger.Warn("access denied to non-published post", "postId", postID, "user", user)
	return nil, ErrForbidden
}

func (s *postService) ListPublished(ctx context.Context, filter ListPublishedFilter) ([]*Post, error) {
	return s.repo.ListPublished(ctx, filter)
}

// ApplyDecision is the decision channel consumption path. There is no caller
// to report failures to, so unknown decisions and unknown posts are logged
// and dropped. Only infrastructure errors propagate, so the channel can
// redeliver the message.
func (s *postService) ApplyDecision(ctx context.Context, postID uuid.UUID, decision string) error {
	var target Status
	switch strings.ToUpper(strings.TrimSpace(decision)) {
	case "APPROVED":
		target = StatusPublished
	case "REJECTED":
		target = StatusRejected
	default:
		s.logger.Warn("ignoring unknown review decision", "postId", postID, "decision", decision)
		return nil
	}

	post, err := s.repo.GetByID(ctx, postID)
	if IsNotFound(err) {
		s.logger.Warn("ignoring review decision for unknown post", "postId", postID, "decision", decision)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load post %s for decision: %w", postID, err)
	}

	// Redelivery of an already-applied decision is harmless.
	if post.Status == target {
		return nil
	}
	if !post.Status.CanTransitionTo(target) {
		s.logger.Warn("dropping review decision, illegal transition",
			"postId", postID, "from", post.Status, "to", target)
		return nil
	}

	err = s.repo.UpdateStatusWhere(ctx, postID, []Status{StatusPendingReview}, target)
	if err == ErrStatusConflict {
		// A concurrent decision landed first; this delivery is stale.
		s.logger.Warn("dropping stale review decision", "postId", postID, "to", target)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply decision %s to post %s: %w", decision, postID, err)
	}

	s.logger.Info("review decision applied", "postId", postID, "status", target)
	return nil
}

// UpdateStatus backs the direct-call decision variant. Unlike ApplyDecision
// it has a caller, so violations surface as errors.
func (s *postService) UpdateStatus(ctx context.Context, postID uuid.UUID, newStatus Status) error {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.Status == newStatus {
		return nil
	}
	if !post.Status.CanTransitionTo(newStatus) {
		return NewInvalidState("cannot transition post from %s to %s", post.Status, newStatus)
	}

	err = s.repo.UpdateStatusWhere(ctx, postID, []Status{post.Status}, newStatus)
	if err == ErrStatusConflict {
		return NewInvalidState("post status changed concurrently, cannot transition to %s", newStatus)
	}
	if err != nil {
		return fmt.Errorf("failed to update status of post %s: %w", postID, err)
	}

	s.logger.Info("post status updated", "postId", postID, "status", newStatus)
	return nil
}

// validationError converts validator output into the domain error type.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return NewValidationError(strings.ToLower(fe.Field()), fmt.Sprintf("failed on the %q rule", fe.Tag()))
	}
	return NewValidationError("request", err.Error())
}
