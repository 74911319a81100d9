package routes

import (
	"Editorial/internal/api/handlers/review"
	"Editorial/internal/api/middleware"
	"Editorial/internal/core/reviews"

	"github.com/go-chi/chi/v5"
)

// RegisterReviewRoutes registers review endpoints on the router.
func RegisterReviewRoutes(r chi.Router, service reviews.Service) {
	handler := review.NewHandler(service)

	// Submission notifications from the post service
	r.With(middleware.RequireIdentity).Post("/api/reviews/submit", handler.HandleSubmit)

	// Reviewer decisions
	r.With(middleware.RequireIdentity).Post("/api/reviews/{postID}/approve", handler.HandleApprove)
	r.With(middleware.RequireIdentity).Post("/api/reviews/{postID}/reject", handler.HandleReject)

	r.Get("/api/reviews/{postID}", handler.HandleGet)
}
