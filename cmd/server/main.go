package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"stock-board/internal/config"
	"stock-board/internal/database"
	"stock-board/internal/handlers"
	"stock-board/internal/middleware"
	"stock-board/internal/models"
	"stock-board/internal/service"
	"stock-board/internal/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongodb, err := database.NewMongoDB(cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongodb.Close(ctx); err != nil {
			log.Printf("Error closing MongoDB connection: %v", err)
		}
	}()

	if err := ensureIndexes(mongodb); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	var metrics *utils.MetricsCollector
	if cfg.Server.MetricsEnabled {
		metrics = utils.NewMetricsCollector()
	}

	svc := service.New(mongodb, time.Duration(cfg.Server.RequestTimeout)*time.Second)
	auth := middleware.NewAuth(cfg.JWTSecret)
	server := handlers.NewServer(svc, auth, metrics)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", server.HandleHealth())

	// Market record queries, one endpoint per kind
	for _, kind := range models.MarketKinds {
		mux.HandleFunc("/"+string(kind), server.HandleQuery(kind))
	}

	// Content queries share their path with the protected write operations
	queryPost := server.HandleQuery(models.KindPost)
	createPost := auth.Protect(server.HandleCreatePost())
	mux.HandleFunc("/post", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			queryPost(w, r)
			return
		}
		createPost(w, r)
	})

	queryComment := server.HandleQuery(models.KindComment)
	createComment := auth.Protect(server.HandleCreateComment())
	mux.HandleFunc("/comment", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			queryComment(w, r)
			return
		}
		createComment(w, r)
	})

	mux.HandleFunc("/user", server.HandleQuery(models.KindUser))
	mux.HandleFunc("/user/register", server.HandleRegister())
	mux.HandleFunc("/user/login", server.HandleLogin())
	mux.HandleFunc("/post/thread/repair", auth.Protect(server.HandleRepairThread()))

	handler := middleware.CORSMiddleware(middleware.DefaultCORSConfig(cfg.AllowedOrigins))(mux)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func ensureIndexes(mongodb *database.MongoDB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := mongodb.EnsureUserIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.EnsurePostIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.EnsureCommentIndexes(ctx); err != nil {
		return err
	}
	return mongodb.EnsureMarketIndexes(ctx)
}
