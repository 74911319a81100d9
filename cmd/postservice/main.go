package main

import (
	"context"
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
	"Editorial/internal/core/posts"
	postgresRepo "Editorial/internal/db/postgres"
	"Editorial/internal/messaging/rabbit"
)

func main() {
	cfg := config.Load("8081")

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Connected to post database")

	// Run migrations
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect:", err)
	}

	if err := goose.Up(db, "internal/db/migrations/postservice"); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	log.Println("Migrations completed successfully")

	postRepo := postgresRepo.NewPostRepository(db)
	reviewClient := clients.NewReviewServiceClient(cfg.Services.ReviewServiceURL, cfg.Identity.InternalIdentity, cfg.Services.ClientTimeout())
	postService := posts.NewPostService(postRepo, reviewClient, cfg.Identity.TrustedIdentities, nil)

	// Review decisions arrive over RabbitMQ unless the direct transport is
	// selected, in which case the review service calls the status endpoint.
	if cfg.Rabbit.Transport == config.TransportQueue {
		consumer := rabbit.NewDecisionConsumer(cfg.Rabbit.URL, postService)
		go func() {
			if err := consumer.Start(context.Background()); err != nil {
				log.Printf("Decision consumer stopped: %v", err)
			}
		}()
	}

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

	routes.RegisterPostRoutes(r, postService)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	fmt.Printf("Post service starting on port %s\n", cfg.Server.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, r))
}
