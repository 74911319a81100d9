// Package clients holds the HTTP clients the services use to talk to each
// other: the review and comment services read posts from the post service,
// the post service submits review requests to the review service.
package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"Editorial/internal/core/comments"
	"Editorial/internal/core/reviews"
)

// Sentinel errors distinguishing what went wrong on a post lookup. A missing
// or invisible post is not the same failure as an unreachable post service.
var (
	ErrPostNotFound           = errors.New("post not found")
	ErrPostForbidden          = errors.New("post not visible to caller")
	ErrPostServiceUnreachable = errors.New("post service unreachable")
)

const identityHeader = "user"

// PostSummary is the post read model returned by the post service API.
type PostSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostServiceClient calls the post service REST API.
type PostServiceClient struct {
	baseURL    string
	identity   string
	httpClient *http.Client
}

// NewPostServiceClient creates a client with a bounded request timeout.
// identity is the calling service's own identity, used on requests that are
// not made on behalf of a specific user.
func NewPostServiceClient(baseURL, identity string, timeout time.Duration) *PostServiceClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PostServiceClient{
		baseURL:    baseURL,
		identity:   identity,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetPost fetches a post as the given identity. The identity header drives
// the post service's visibility check.
func (c *PostServiceClient) GetPost(ctx context.Context, postID uuid.UUID, identity string) (*PostSummary, error) {
	endpoint := fmt.Sprintf("%s/api/posts/%s", c.baseURL, postID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create post request: %w", err)
	}
	req.Header.Set(identityHeader, identity)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPostServiceUnreachable, err)
	}
	defer closeBody(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrPostNotFound, postID)
	case http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrPostForbidden, postID)
	default:
		return nil, fmt.Errorf("%w: post service returned %d", ErrPostServiceUnreachable, resp.StatusCode)
	}

	var summary PostSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("failed to decode post response: %w", err)
	}
	return &summary, nil
}

// UpdateStatus PUTs a new status on the post service. Used by the
// direct-call decision variant. Implements reviews.StatusUpdater.
func (c *PostServiceClient) UpdateStatus(ctx context.Context, postID uuid.UUID, status string) error {
	endpoint := fmt.Sprintf("%s/api/posts/%s/status/%s", c.baseURL, postID, status)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create status update request: %w", err)
	}
	req.Header.Set(identityHeader, c.identity)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPostServiceUnreachable, err)
	}
	defer closeBody(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrPostNotFound, postID)
	default:
		return fmt.Errorf("post service rejected status update with %d", resp.StatusCode)
	}
}

// ReviewerPostGateway adapts the post client to the review service's
// gateway interface, fetching with the fixed reviewer identity.
type ReviewerPostGateway struct {
	client   *PostServiceClient
	identity string
}

// NewReviewerPostGateway creates the gateway used by the review service.
func NewReviewerPostGateway(client *PostServiceClient, identity string) *ReviewerPostGateway {
	return &ReviewerPostGateway{client: client, identity: identity}
}

// GetPost implements reviews.PostGateway.
func (g *ReviewerPostGateway) GetPost(ctx context.Context, postID uuid.UUID) (*reviews.PostSnapshot, error) {
	summary, err := g.client.GetPost(ctx, postID, g.identity)
	if errors.Is(err, ErrPostNotFound) || errors.Is(err, ErrPostForbidden) {
		return nil, fmt.Errorf("%w: %s", reviews.ErrPostNotFound, postID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", reviews.ErrPostLookupFailed, err)
	}
	return &reviews.PostSnapshot{
		ID:      summary.ID,
		Title:   summary.Title,
		Author:  summary.Author,
		Status:  summary.Status,
		Content: summary.Content,
	}, nil
}

// CommenterPostGateway adapts the post client to the comment service's
// gateway interface, fetching with the commenting user's identity.
type CommenterPostGateway struct {
	client *PostServiceClient
}

// NewCommenterPostGateway creates the gateway used by the comment service.
func NewCommenterPostGateway(client *PostServiceClient) *CommenterPostGateway {
	return &CommenterPostGateway{client: client}
}

// GetPost implements comments.PostGateway.
func (g *CommenterPostGateway) GetPost(ctx context.Context, postID uuid.UUID, viewer string) (*comments.PostSnapshot, error) {
	summary, err := g.client.GetPost(ctx, postID, viewer)
	if errors.Is(err, ErrPostNotFound) || errors.Is(err, ErrPostForbidden) {
		return nil, fmt.Errorf("%w: %s", comments.ErrPostNotVisible, postID)
	}
	if err != nil {
		return nil, err
	}
	return &comments.PostSnapshot{
		ID:     summary.ID,
		Title:  summary.Title,
		Author: summary.Author,
		Status: summary.Status,
	}, nil
}

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		log.Printf("Warning: failed to close response body: %v", err)
	}
}
