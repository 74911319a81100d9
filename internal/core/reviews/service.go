package reviews

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

type reviewService struct {
	repo      Repository
	posts     PostGateway
	announcer DecisionAnnouncer
	logger    *slog.Logger
}

// NewReviewService creates a new review workflow service.
func NewReviewService(repo Repository, posts PostGateway, announcer DecisionAnnouncer, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &reviewService{
		repo:      repo,
		posts:     posts,
		announcer: announcer,
		logger:    logger,
	}
}

// Submit eagerly creates the PENDING review at submission time, so a later
// decision never has to bootstrap its own pending row after the fact.
func (s *reviewService) Submit(ctx context.Context, req SubmitRequest) (*Review, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid review submission: %w", err)
	}

	review, err := s.repo.EnsurePending(ctx, req.PostID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pending review for post %s: %w", req.PostID, err)
	}

	s.logger.Info("review request received",
		"postId", req.PostID, "author", req.Author, "title", req.Title)
	return review, nil
}

func (s *reviewService) Approve(ctx context.Context, postID uuid.UUID, reviewerID string) (*Review, error) {
	if _, err := s.fetchPost(ctx, postID); err != nil {
		return nil, err
	}

	review, err := s.repo.EnsurePending(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load review for post %s: %w", postID, err)
	}
	if review.Status.Decided() {
		return nil, NewInvalidState("post review is already %s", review.Status)
	}

	saved, err := s.repo.Decide(ctx, postID, reviewerID, StatusApproved, nil, time.Now().UTC())
	if errors.Is(err, ErrAlreadyDecided) {
		return nil, NewInvalidState("post review is already decided")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to approve review for post %s: %w", postID, err)
	}

	if err := s.announce(ctx, Decision{PostID: postID, Outcome: "APPROVED"}); err != nil {
		return nil, err
	}

	s.logger.Info("post approved", "postId", postID, "reviewerId", reviewerID)
	return saved, nil
}

func (s *reviewService) Reject(ctx context.Context, postID uuid.UUID, reviewerID, rejectionComment string) (*Review, error) {
	comment := strings.TrimSpace(rejectionComment)
	if comment == "" {
		return nil, NewInvalidState("rejection requires a comment")
	}

	if _, err := s.fetchPost(ctx, postID); err != nil {
		return nil, err
	}

	review, err := s.repo.EnsurePending(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load review for post %s: %w", postID, err)
	}
	if review.Status.Decided() {
		return nil, NewInvalidState("post review is already %s", review.Status)
	}

	saved, err := s.repo.Decide(ctx, postID, reviewerID, StatusRejected, &comment, time.Now().UTC())
	if errors.Is(err, ErrAlreadyDecided) {
		return nil, NewInvalidState("post review is already decided")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reject review for post %s: %w", postID, err)
	}

	if err := s.announce(ctx, Decision{PostID: postID, Outcome: "REJECTED"}); err != nil {
		return nil, err
	}

	s.logger.Info("post rejected", "postId", postID, "reviewerId", reviewerID, "comment", comment)
	return saved, nil
}

func (s *reviewService) GetByPostID(ctx context.Context, postID uuid.UUID) (*Review, error) {
	return s.repo.GetByPostID(ctx, postID)
}

// fetchPost confirms the post exists and is fetchable before any decision is
// recorded. Missing posts and unreachable post service stay distinct error
// classes.
func (s *reviewService) fetchPost(ctx context.Context, postID uuid.UUID) (*PostSnapshot, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if IsPostNotFound(err) {
		s.logger.Warn("post not found in post service", "postId", postID)
		return nil, fmt.Errorf("%w: %s", ErrPostNotFound, postID)
	}
	if err != nil {
		s.logger.Warn("post service lookup failed", "postId", postID, "error", err)
		return nil, fmt.Errorf("%w: %s", ErrPostLookupFailed, postID)
	}
	return post, nil
}

func (s *reviewService) announce(ctx context.Context, decision Decision) error {
	if s.announcer == nil {
		return nil
	}
	if err := s.announcer.Announce(ctx, decision); err != nil {
		return fmt.Errorf("failed to announce %s decision for post %s: %w",
			decision.Outcome, decision.PostID, err)
	}
	return nil
}

// DirectAnnouncer is the direct-call decision variant: instead of publishing
// to the decision channel it PUTs the new status on the post service.
type DirectAnnouncer struct {
	updater StatusUpdater
	logger  *slog.Logger
}

// NewDirectAnnouncer creates an announcer backed by the post status API.
func NewDirectAnnouncer(updater StatusUpdater, logger *slog.Logger) *DirectAnnouncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirectAnnouncer{updater: updater, logger: logger}
}

// Announce maps the decision to the target post status and calls the post
// service synchronously.
func (a *DirectAnnouncer) Announce(ctx context.Context, decision Decision) error {
	var target string
	switch decision.Outcome {
	case "APPROVED":
		target = "PUBLISHED"
	case "REJECTED":
		target = "REJECTED"
	default:
		return fmt.Errorf("unknown decision outcome: %q", decision.Outcome)
	}

	a.logger.Info("sending direct status update", "postId", decision.PostID, "status", target)
	return a.updater.UpdateStatus(ctx, decision.PostID, target)
}
