package routes

import (
	"Editorial/internal/api/handlers/comment"
	"Editorial/internal/api/middleware"
	"Editorial/internal/core/comments"

	"github.com/go-chi/chi/v5"
)

// RegisterCommentRoutes registers comment endpoints on the router.
func RegisterCommentRoutes(r chi.Router, service comments.Service) {
	handler := comment.NewHandler(service)

	// Comments are scoped to a post for creation and listing
	r.Get("/api/posts/{postID}/comments", handler.HandleList)
	r.With(middleware.RequireIdentity).Post("/api/posts/{postID}/comments", handler.HandleCreate)

	// Individual comments are addressed by their own id
	r.With(middleware.RequireIdentity).Put("/api/comments/{commentID}", handler.HandleEdit)
	r.With(middleware.RequireIdentity).Delete("/api/comments/{commentID}", handler.HandleDelete)
}
