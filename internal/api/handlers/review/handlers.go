package review

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"Editorial/internal/api/middleware"
	"Editorial/internal/core/reviews"
)

// Handler serves the review workflow REST endpoints.
type Handler struct {
	service reviews.Service
}

// NewHandler creates a new review handler
func NewHandler(service reviews.Service) *Handler {
	return &Handler{service: service}
}

type rejectRequest struct {
	RejectionComment string `json:"rejectionComment"`
}

// HandleSubmit handles POST /api/reviews/submit, the intake call from the
// post service. It eagerly creates the PENDING review.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req reviews.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	created, err := h.service.Submit(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, created)
}

// HandleApprove handles POST /api/reviews/{postID}/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	postID, ok := parsePostID(w, r)
	if !ok {
		return
	}

	review, err := h.service.Approve(r.Context(), postID, middleware.GetIdentity(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

// HandleReject handles POST /api/reviews/{postID}/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	postID, ok := parsePostID(w, r)
	if !ok {
		return
	}

	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	review, err := h.service.Reject(r.Context(), postID, middleware.GetIdentity(r), req.RejectionComment)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

// HandleGet handles GET /api/reviews/{postID}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	postID, ok := parsePostID(w, r)
	if !ok {
		return
	}

	review, err := h.service.GetByPostID(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, review)
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
	_ = json.NewEncoder(w).Encode(body)
}
