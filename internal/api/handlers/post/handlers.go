package post

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"Editorial/internal/api/middleware"
	"Editorial/internal/core/posts"
)

// Handler serves the post workflow REST endpoints.
type Handler struct {
	service posts.Service
}

// NewHandler creates a new post handler
func NewHandler(service posts.Service) *Handler {
	return &Handler{service: service}
}

// HandleCreate handles POST /api/posts
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1*1024*1024)

	var req posts.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	author := middleware.GetIdentity(r)

	created, err := h.service.Create(r.Context(), req, author)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleEdit handles PUT /api/posts/{postID}
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	postID, ok := parsePostID(w, r)
	if !ok {
		return
	}

	var req posts.EditPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	updated, err := h.service.Edit(r.Context(), postID, req, middleware.GetIdentity(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// HandleSubmit handles POST /api/posts/{postID}/submit
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	postID, ok := parsePostID(w, r)
	if !ok {
		return
	}

	submitted, err := h.service.SubmitForReview(r.Context(), postID, middleware.GetIdentity(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, submitted)
}

// HandleGet handles GET /api/posts/{postID}. Anonymous callers can read
// published posts; everything else needs the author or a trusted identity.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	postID, ok := parsePostID(w, r)
	if !ok {
		return
	}

	post, err := h.service.GetByID(r.Context(), postID, middleware.GetIdentity(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// HandleList handles GET /api/posts with optional content, author, from and
// to query filters. Dates use the 2006-01-02 form.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := posts.ListPublishedFilter{
		Content: r.URL.Query().Get("content"),
		Author:  r.URL.Query().Get("author"),
	}

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "InvalidRequest", "from must be a date in the form 2006-01-02")
			return
		}
		filter.From = &from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "InvalidRequest", "to must be a date in the form 2006-01-02")
			return
		}
		filter.To = &to
	}

	published, err := h.service.ListPublished(r.Context(), filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if published == nil {
		published = []*posts.Post{}
	}

	writeJSON(w, http.StatusOK, published)
}

// HandleUpdateStatus handles PUT /api/posts/{postID}/status/{newStatus}.
// Consumed by the review service in the direct-call decision variant.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	postID, ok := parsePostID(w, r)
	if !ok {
		return
	}

	newStatus, err := posts.ParseStatus(chi.URLParam(r, "newStatus"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	if err := h.service.UpdateStatus(r.Context(), postID, newStatus); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func parsePostID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "postID must be a UUID")
		return uuid.Nil, false
	}
	return postID, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
