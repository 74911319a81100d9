package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"Editorial/internal/api/middleware"
	"Editorial/internal/api/routes"
	"Editorial/internal/clients"
	"Editorial/internal/config"
	"Editorial/internal/core/comments"
	postgresRepo "Editorial/internal/db/postgres"
)

func main() {
	cfg := config.Load("8083")

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Connected to comment database")

	// Run migrations
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect:", err)
	}

	if err := goose.Up(db, "internal/db/migrations/commentservice"); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	log.Println("Migrations completed successfully")

	postClient := clients.NewPostServiceClient(cfg.Services.PostServiceURL, cfg.Identity.CommenterIdentity, cfg.Services.ClientTimeout())
	postGateway := clients.NewCommenterPostGateway(postClient)

	commentRepo := postgresRepo.NewCommentRepository(db)
	commentService := comments.NewCommentService(commentRepo, postGateway, cfg.Identity.ReviewerIdentity, nil)

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.IdentityHeader},
		MaxAge:         300,
	}))
	r.Use(middleware.Identity)

	routes.RegisterCommentRoutes(r, commentService)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	fmt.Printf("Comment service starting on port %s\n", cfg.Server.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, r))
}
