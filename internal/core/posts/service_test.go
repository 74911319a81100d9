package posts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock implementations for testing

// mockPostRepo is a map-backed mock of the post Repository interface.
type mockPostRepo struct {
	posts     map[uuid.UUID]*Post
	getErr    error
	updateErr error
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: make(map[uuid.UUID]*Post)}
}

func (m *mockPostRepo) Create(ctx context.Context, post *Post) error {
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostRepo) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if p, ok := m.posts[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (m *mockPostRepo) Update(ctx context.Context, post *Post) error {
	if _, ok := m.posts[post.ID]; !ok {
		return ErrNotFound
	}
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostRepo) ListPublished(ctx context.Context, filter ListPublishedFilter) ([]*Post, error) {
	var result []*Post
	for _, p := range m.posts {
		if p.Status == StatusPublished {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockPostRepo) UpdateStatusWhere(ctx context.Context, id uuid.UUID, allowedFrom []Status, target Status) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	p, ok := m.posts[id]
	if !ok {
		return ErrNotFound
	}
	for _, from := range allowedFrom {
		if p.Status == from {
			p.Status = target
			p.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrStatusConflict
}

// mockReviewSubmitter records submissions to the review service.
type mockReviewSubmitter struct {
	submissions []ReviewSubmission
	err         error
}

func (m *mockReviewSubmitter) SubmitForReview(ctx context.Context, sub ReviewSubmission) error {
	if m.err != nil {
		return m.err
	}
	m.submissions = append(m.submissions, sub)
	return nil
}

func seedPost(repo *mockPostRepo, author string, status Status) *Post {
	now := time.Now().UTC()
	post := &Post{
		ID:        uuid.New(),
		Title:     "Test title",
		Content:   "Test content",
		Author:    author,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	repo.posts[post.ID] = post
	return post
}

func TestPostService_Create(t *testing.T) {
	repo := newMockPostRepo()
	service := NewPostService(repo, nil, nil, nil)

	post, err := service.Create(context.Background(), CreatePostRequest{
		Title:   "Hello",
		Content: "World",
	}, "alice")

	require.NoError(t, err)
	assert.Equal(t, StatusDraft, post.Status)
	assert.Equal(t, "alice", post.Author)
	assert.NotEqual(t, uuid.Nil, post.ID)
	assert.Len(t, repo.posts, 1)
}

func TestPostService_Create_MissingTitle(t *testing.T) {
	service := NewPostService(newMockPostRepo(), nil, nil, nil)

	_, err := service.Create(context.Background(), CreatePostRequest{Content: "body"}, "alice")

	assert.True(t, IsValidationError(err))
}

func TestPostService_Create_MissingAuthor(t *testing.T) {
	service := NewPostService(newMockPostRepo(), nil, nil, nil)

	_, err := service.Create(context.Background(), CreatePostRequest{Title: "t", Content: "c"}, "")

	assert.True(t, IsValidationError(err))
}

func TestPostService_Edit_Draft(t *testing.T) {
	repo := newMockPostRepo()
	post := seedPost(repo, "alice", StatusDraft)
	service := NewPostService(repo, nil, nil, nil)

	updated, err := service.Edit(context.Background(), post.ID, EditPostRequest{
		Title:   "New title",
		Content: "New content",
	}, "alice")

	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, StatusDraft, updated.Status)
	assert.Equal(t, "New title", repo.posts[post.ID].Title)
}

func TestPostService_Edit_Rejected(t *testing.T) {
	repo := newMockPostRepo()
	post := seedPost(repo, "alice", StatusRejected)
	service := NewPostService(repo, nil, nil, nil)

	updated, err := service.Edit(context.Background(), post.ID, EditPostRequest{
		Title:   "Reworked",
		Content: "Addressed the feedback",
	}, "alice")

	require.NoError(t, err)
	// Editing does not change status; the author resubmits explicitly.
	assert.Equal(t, StatusRejected, updated.Status)
}

func TestPostService_Edit_NotAuthor(t *testing.T) {
	repo := newMockPostRepo()
	post := seedPost(repo, "alice", StatusDraft)
	service := NewPostService(repo, nil, nil, nil)

	_, err := service.Edit(context.Background(), post.ID, EditPostRequest{
		Title:   "Hijacked",
		Content: "x",
	}, "mallory")

	assert.True(t, IsForbidden(err))
	assert.Equal(t, "Test title", repo.posts[post.ID].Title)
}

func TestPostService_Edit_PendingReview(t *testing.T) {
	repo := newMockPostRepo()
	post := seedPost(repo, "alice", StatusPendingReview)
	service := NewPostService(repo, nil, nil, nil)

	_, err := service.Edit(context.Background(), post.ID, EditPostRequest{
		Title:   "Too late",
		Content: "x",
	}, "alice")

	assert.True(t, IsInvalidState(err))
}

func TestPostService_Edit_CaseInsensitiveAuthor(t *testing.T) {
	repo := newMockPostRepo()
	post := seedPost(repo, "Alice", StatusDraft)
	service := NewPostService(repo, nil, nil, nil)

	_, err := service.Edit(context.Background(), post.ID, EditPostRequest{
		Title:   "ok",
		Content: "ok",
	}, "alice")

	assert.NoError(t, err)
}

func TestPostService_SubmitForReview(t *testing.T) {
	repo := newMockPostRepo()
	submitter := &mockReviewSubmitter{}
	post := seedPost(repo, "alice", StatusDraft)
	service := NewPostService(repo, submitter, nil, nil)

	updated, err := service.SubmitForReview(context.Background(), post.ID, "alice")

	require.NoError(t, err)
	assert.Equal(t, StatusPendingReview, updated.Status)
	assert.Equal(t, StatusPendingReview, repo.posts[post.ID].Status)
	require.Len(t, submitter.submissions, 1)
	assert.Equal(t, post.ID, submitter.submissions[0].PostID)
	assert.Equal(t, "alice", submitter.submissions[0].Author)
}

func TestPostService_SubmitForReview_DownstreamFailure(t *testing.T) {
	repo := newMockPostRepo()
	submitter := &mockReviewSubmitter{err: errors.New("review service unreachable")}
	post := seedPost(repo, "alice", StatusDraft)
	service := NewPostService(repo, submitter, nil, nil)

	updated, err := service.SubmitForReview(context.Background(), post.ID, "alice")

	// The local status change sticks even when the notification fails.
	require.NoError(t, err)
	assert.Equal(t, StatusPendingReview, updated.Status)
	assert.Equal(t, StatusPendingReview, repo.posts[post.ID].Status)
}

func TestPostService_SubmitForReview_NotDraft(t *testing.T) {
	repo := newMockPostRepo()
	post := seedPost(repo, "alice", StatusPublished)
	service := NewPostService(repo, &mockReviewSubmitter{}, nil, nil)

	_, err := service.SubmitForReview(context.Background(), post.ID, "alice")

	assert.True(t, IsInvalidState(err))
}

func TestPostService_SubmitForReview_NotAuthor(t *testing.T) {
	repo := newMockPostRepo()
	post := seedPost(repo, "alice", StatusDraft)
	service := NewPostService(repo, &mockReviewSubmitter{}, nil, nil)

	_, err := service.SubmitForReview(context.Background(), post.ID, "bob")

	assert.True(t, IsForbidden(err))
	assert.Equal(t, StatusDraft, repo.posts[post.ID].Status)
}

func TestPostService_GetByID_Visibility(t *testing.T) {
	repo := newMockPostRepo()
	published := seedPost(repo, "alice", StatusPublished)
	draft := seedPost(repo, "alice", StatusDraft)
	service := NewPostService(repo, nil, []string{"internal", "reviewer"}, nil)

	// Published posts are visible to anyone, identified or not.
	_, err := service.GetByID(context.Background(), published.ID, "")
	assert.NoError(t, err)

	// Drafts are visible to the author, case-insensitively.
	_, err = service.GetByID(context.Background(), draft.ID, "ALICE")
	assert.NoError(t, err)

	// And to trusted service identities.
	_, err = service.GetByID(context.Background(), draft.ID, "reviewer")
	assert.NoError(t, err)

	// But not to other users.
	_, err = service.GetByID(context.Background(), draft.ID, "bob")
	assert.True(t, IsForbidden(err))
}

func TestPostService_GetByID_NotFound(t *testing.T) {
	service := NewPostService(newMockPostRepo(), nil, nil, nil)

	_, err := service.GetByID(context.Background(), uuid.New(), "alice")

	assert.True(t, IsNotFound(err))
}

func TestPostService_ApplyDecision_Approved(t *testing.T) {
	repo := newMockPostRepo()
	post := seedPost(repo, "alice", StatusPendingReview)
	service := NewPostService(repo, nil, nil, nil)

	err := service.ApplyDecision(context.Background(), post.ID, "APPROVED")

	require.NoError(t, err)
	assert.Equal(t, StatusPublished, repo.posts[post.ID].Status)
}

func TestPostService_ApplyDecision_Rejected(t *testing.T) {
	repo := newMockPostRepo()
	post := seedPost(repo, "alice", StatusPendingReview)
	service := NewPostService(repo, nil, nil, nil)

	err := service.ApplyDecision(context.Background(), post.ID, "rejected")

	require.NoError(t, err)
	assert.Equal(t, StatusRejected, repo.posts[post.ID].Status)
}

func TestPostService_ApplyDecision_UnknownDecision(t *testing.T) {
	repo := newMockPostRepo()
	post := seedPost(repo, "alice", StatusPendingReview)
	service := NewPostService(repo, nil, nil, nil)

	err := service.ApplyDecision(context.Background(), post.ID, "MAYBE")

	// Logged and dropped, never an error back to the channel.
	assert.NoError(t, err)
	assert.Equal(t, StatusPendingReview, repo.posts[post.ID].Status)
}

func TestPostService_ApplyDecision_UnknownPost(t *testing.T) {
	service := NewPostService(newMockPostRepo(), nil, nil, nil)

	err := service.ApplyDecision(context.Background(), uuid.New(), "APPROVED")

	assert.NoError(t, err)
}

func TestPostService_ApplyDecision_Redelivery(t *testing.T) {
	repo := newMockPostRepo()
	post := seedPost(repo, "alice", StatusPublished)
	service := NewPostService(repo, nil, nil, nil)

	err := service.ApplyDecision(context.Background(), post.ID, "APPROVED")

	assert.NoError(t, err)
	assert.Equal(t, StatusPublished, repo.posts[post.ID].Status)
}

func TestPostService_ApplyDecision_IllegalTransition(t *testing.T) {
	repo := newMockPostRepo()
	post := seedPost(repo, "alice", StatusDraft)
	service := NewPostService(repo, nil, nil, nil)

	err := service.ApplyDecision(context.Background(), post.ID, "APPROVED")

	assert.NoError(t, err)
	assert.Equal(t, StatusDraft, repo.posts[post.ID].Status)
}

func TestPostService_ApplyDecision_InfraErrorPropagates(t *testing.T) {
	repo := newMockPostRepo()
	repo.getErr = errors.New("connection refused")
	service := NewPostService(repo, nil, nil, nil)

	err := service.ApplyDecision(context.Background(), uuid.New(), "APPROVED")

	// Infrastructure failures must surface so the message gets redelivered.
	assert.Error(t, err)
}

func TestPostService_UpdateStatus(t *testing.T) {
	repo := newMockPostRepo()
	post := seedPost(repo, "alice", StatusPendingReview)
	service := NewPostService(repo, nil, nil, nil)

	err := service.UpdateStatus(context.Background(), post.ID, StatusPublished)

	require.NoError(t, err)
	assert.Equal(t, StatusPublished, repo.posts[post.ID].Status)
}

func TestPostService_UpdateStatus_Resubmission(t *testing.T) {
	repo := newMockPostRepo()
	post := seedPost(repo, "alice", StatusRejected)
	service := NewPostService(repo, nil, nil, nil)

	err := service.UpdateStatus(context.Background(), post.ID, StatusPendingReview)

	require.NoError(t, err)
	assert.Equal(t, StatusPendingReview, repo.posts[post.ID].Status)
}

func TestPostService_UpdateStatus_IllegalTransition(t *testing.T) {
	repo := newMockPostRepo()
	post := seedPost(repo, "alice", StatusPublished)
	service := NewPostService(repo, nil, nil, nil)

	err := service.UpdateStatus(context.Background(), post.ID, StatusDraft)

	assert.True(t, IsInvalidState(err))
	assert.Equal(t, StatusPublished, repo.posts[post.ID].Status)
}

func TestPostService_UpdateStatus_SameStatusNoOp(t *testing.T) {
	repo := newMockPostRepo()
	post := seedPost(repo, "alice", StatusPublished)
	service := NewPostService(repo, nil, nil, nil)

	err := service.UpdateStatus(context.Background(), post.ID, StatusPublished)

	assert.NoError(t, err)
}
