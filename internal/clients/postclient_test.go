package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Editorial/internal/core/comments"
	"Editorial/internal/core/reviews"
)

func TestPostServiceClient_GetPost(t *testing.T) {
	postID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, fmt.Sprintf("/api/posts/%s", postID), r.URL.Path)
		assert.Equal(t, "reviewer", r.Header.Get("user"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     postID,
			"title":  "Test title",
			"author": "alice",
			"status": "PENDING_REVIEW",
		})
	}))
	defer server.Close()

	client := NewPostServiceClient(server.URL, "reviewer", time.Second)

	summary, err := client.GetPost(context.Background(), postID, "reviewer")

	require.NoError(t, err)
	assert.Equal(t, postID, summary.ID)
	assert.Equal(t, "alice", summary.Author)
	assert.Equal(t, "PENDING_REVIEW", summary.Status)
}

func TestPostServiceClient_GetPost_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewPostServiceClient(server.URL, "reviewer", time.Second)

	_, err := client.GetPost(context.Background(), uuid.New(), "reviewer")

	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostServiceClient_GetPost_Forbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewPostServiceClient(server.URL, "comment", time.Second)

	_, err := client.GetPost(context.Background(), uuid.New(), "bob")

	assert.ErrorIs(t, err, ErrPostForbidden)
}

func TestPostServiceClient_GetPost_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewPostServiceClient(server.URL, "reviewer", time.Second)

	_, err := client.GetPost(context.Background(), uuid.New(), "reviewer")

	assert.ErrorIs(t, err, ErrPostServiceUnreachable)
}

func TestPostServiceClient_GetPost_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	client := NewPostServiceClient(server.URL, "reviewer", time.Second)

	_, err := client.GetPost(context.Background(), uuid.New(), "reviewer")

	assert.ErrorIs(t, err, ErrPostServiceUnreachable)
}

func TestPostServiceClient_UpdateStatus(t *testing.T) {
	postID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, fmt.Sprintf("/api/posts/%s/status/PUBLISHED", postID), r.URL.Path)
		assert.Equal(t, "reviewer", r.Header.Get("user"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewPostServiceClient(server.URL, "reviewer", time.Second)

	err := client.UpdateStatus(context.Background(), postID, "PUBLISHED")

	assert.NoError(t, err)
}

func TestPostServiceClient_UpdateStatus_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewPostServiceClient(server.URL, "reviewer", time.Second)

	err := client.UpdateStatus(context.Background(), uuid.New(), "PUBLISHED")

	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestReviewerPostGateway_ErrorMapping(t *testing.T) {
	var status int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	client := NewPostServiceClient(server.URL, "reviewer", time.Second)
	gateway := NewReviewerPostGateway(client, "reviewer")

	// 404 and 403 both mean the post does not exist as far as the reviewer
	// is concerned.
	status = http.StatusNotFound
	_, err := gateway.GetPost(context.Background(), uuid.New())
	assert.ErrorIs(t, err, reviews.ErrPostNotFound)

	status = http.StatusForbidden
	_, err = gateway.GetPost(context.Background(), uuid.New())
	assert.ErrorIs(t, err, reviews.ErrPostNotFound)

	// A failing post service is a different error class.
	status = http.StatusBadGateway
	_, err = gateway.GetPost(context.Background(), uuid.New())
	assert.ErrorIs(t, err, reviews.ErrPostLookupFailed)
}

func TestCommenterPostGateway_ViewerIdentity(t *testing.T) {
	postID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The commenting user's identity is forwarded, not the service's.
		assert.Equal(t, "bob", r.Header.Get("user"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     postID,
			"status": "PUBLISHED",
		})
	}))
	defer server.Close()

	client := NewPostServiceClient(server.URL, "comment", time.Second)
	gateway := NewCommenterPostGateway(client)

	snapshot, err := gateway.GetPost(context.Background(), postID, "bob")

	require.NoError(t, err)
	assert.Equal(t, postID, snapshot.ID)
}

func TestCommenterPostGateway_NotVisible(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewPostServiceClient(server.URL, "comment", time.Second)
	gateway := NewCommenterPostGateway(client)

	_, err := gateway.GetPost(context.Background(), uuid.New(), "bob")

	assert.ErrorIs(t, err, comments.ErrPostNotVisible)
}
