package comment

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"Editorial/internal/api/middleware"
	"Editorial/internal/core/comments"
)

// Handler serves the comment REST endpoints.
type Handler struct {
	service comments.Service
}

// NewHandler creates a new comment handler
func NewHandler(service comments.Service) *Handler {
	return &Handler{service: service}
}

// HandleCreate handles POST /api/posts/{postID}/comments
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseID(w, r, "postID")
	if !ok {
		return
	}

	var req comments.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), postID, middleware.GetIdentity(r), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleList handles GET /api/posts/{postID}/comments
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseID(w, r, "postID")
	if !ok {
		return
	}

	list, err := h.service.ListForPost(r.Context(), postID, middleware.GetIdentity(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if list == nil {
		list = []*comments.Comment{}
	}

	writeJSON(w, http.StatusOK, list)
}

// HandleEdit handles PUT /api/comments/{commentID}
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	commentID, ok := parseID(w, r, "commentID")
	if !ok {
		return
	}

	var req comments.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	updated, err := h.service.Edit(r.Context(), commentID, middleware.GetIdentity(r), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /api/comments/{commentID}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	commentID, ok := parseID(w, r, "commentID")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), commentID, middleware.GetIdentity(r)); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", param+" must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
