package review

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Editorial/internal/core/reviews"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: errorType, Message: message}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// handleServiceError maps domain errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case reviews.IsPostNotFound(err), errors.Is(err, reviews.ErrReviewNotFound):
		writeError(w, http.StatusNotFound, "NotFound", err.Error())

	case reviews.IsPostLookupFailed(err):
		// The post service being down is not the same as the post missing.
		writeError(w, http.StatusBadGateway, "PostServiceUnavailable",
			"Could not reach the post service to verify the post")

	case reviews.IsInvalidState(err):
		writeError(w, http.StatusConflict, "InvalidState", err.Error())

	default:
		log.Printf("Unexpected error in review handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
