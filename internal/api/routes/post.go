package routes

import (
	"Editorial/internal/api/handlers/post"
	"Editorial/internal/api/middleware"
	"Editorial/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers post endpoints on the router.
func RegisterPostRoutes(r chi.Router, service posts.Service) {
	handler := post.NewHandler(service)

	// Public listing of published posts with optional filters
	r.Get("/api/posts", handler.HandleList)

	// Single post; visibility depends on status and caller identity
	r.Get("/api/posts/{postID}", handler.HandleGet)

	// Author actions require an identity header
	r.With(middleware.RequireIdentity).Post("/api/posts", handler.HandleCreate)
	r.With(middleware.RequireIdentity).Put("/api/posts/{postID}", handler.HandleEdit)
	r.With(middleware.RequireIdentity).Post("/api/posts/{postID}/submit", handler.HandleSubmit)

	// Internal status transition endpoint used by the review service
	r.With(middleware.RequireIdentity).Put("/api/posts/{postID}/status/{newStatus}", handler.HandleUpdateStatus)
}
