package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"Editorial/internal/core/posts"
)

// ReviewServiceClient submits review requests to the review service.
// It implements posts.ReviewSubmitter.
type ReviewServiceClient struct {
	baseURL    string
	identity   string
	httpClient *http.Client
}

// NewReviewServiceClient creates a client with a bounded request timeout.
// identity is the service identity sent on every call; the review service
// rejects unidentified requests.
func NewReviewServiceClient(baseURL, identity string, timeout time.Duration) *ReviewServiceClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ReviewServiceClient{
		baseURL:    baseURL,
		identity:   identity,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SubmitForReview POSTs the submission to the review intake endpoint.
func (c *ReviewServiceClient) SubmitForReview(ctx context.Context, sub posts.ReviewSubmission) error {
	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to marshal review submission: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/reviews/submit", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create review submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(identityHeader, c.identity)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("review submission request failed: %w", err)
	}
	defer closeBody(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		log.Printf("Review service rejected submission for %s: %d %s", sub.PostID, resp.StatusCode, preview)
		return fmt.Errorf("review service returned %d", resp.StatusCode)
	}

	return nil
}
