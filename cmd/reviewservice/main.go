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
	amqp "github.com/rabbitmq/amqp091-go"

	"Editorial/internal/api/middleware"
	"Editorial/internal/api/routes"
	"Editorial/internal/clients"
	"Editorial/internal/config"
	"Editorial/internal/core/reviews"
	postgresRepo "Editorial/internal/db/postgres"
	"Editorial/internal/messaging/rabbit"
)

func main() {
	cfg := config.Load("8082")

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Connected to review database")

	// Run migrations
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect:", err)
	}

	if err := goose.Up(db, "internal/db/migrations/reviewservice"); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	log.Println("Migrations completed successfully")

	postClient := clients.NewPostServiceClient(cfg.Services.PostServiceURL, cfg.Identity.ReviewerIdentity, cfg.Services.ClientTimeout())
	postGateway := clients.NewReviewerPostGateway(postClient, cfg.Identity.ReviewerIdentity)

	var announcer reviews.DecisionAnnouncer
	if cfg.Rabbit.Transport == config.TransportQueue {
		conn, err := amqp.Dial(cfg.Rabbit.URL)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		defer conn.Close()

		publisher, err := rabbit.NewDecisionPublisher(conn)
		if err != nil {
			log.Fatal("Failed to set up decision publisher:", err)
		}
		defer publisher.Close()
		announcer = publisher

		log.Println("Publishing decisions to RabbitMQ")
	} else {
		announcer = reviews.NewDirectAnnouncer(postClient, nil)
		log.Println("Delivering decisions directly to the post service")
	}

	reviewRepo := postgresRepo.NewReviewRepository(db)
	reviewService := reviews.NewReviewService(reviewRepo, postGateway, announcer, nil)

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.IdentityHeader},
		MaxAge:         300,
	}))
	r.Use(middleware.Identity)

	routes.RegisterReviewRoutes(r, reviewService)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	fmt.Printf("Review service starting on port %s\n", cfg.Server.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, r))
}
