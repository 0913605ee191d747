package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Echoviax/emmolb/internal/cache"
	"github.com/Echoviax/emmolb/internal/config"
	"github.com/Echoviax/emmolb/internal/feed"
	"github.com/Echoviax/emmolb/internal/handlers"
	"github.com/Echoviax/emmolb/internal/hub"
	"github.com/Echoviax/emmolb/internal/publisher"
	"github.com/Echoviax/emmolb/internal/roster"
	"github.com/Echoviax/emmolb/internal/spectator"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
)

func main() {
	log.Println("Starting EMMOLB Spectator...")

	cfg := config.LoadConfig()

	// Initialize Redis client
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	redisClient := redis.NewClient(opts)
	defer redisClient.Close()

	// Test Redis connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")

	// Roster source: league store when configured, empty rosters otherwise
	var rosterSource roster.Source = roster.Static{}
	if cfg.Roster.PostgresDSN != "" {
		rosterClient, err := roster.NewClient(cfg.Roster.PostgresDSN)
		if err != nil {
			log.Fatalf("Failed to connect to league store: %v", err)
		}
		defer rosterClient.Close()
		rosterSource = rosterClient
		log.Println("Connected to league store")
	}

	// Initialize components
	feedClient := feed.NewClient(cfg.Feed.BaseURL)
	cacheWriter := cache.NewRedisWriter(redisClient)
	streamPublisher := publisher.NewStreamPublisher(redisClient)
	broadcastHub := hub.NewHub()

	orch := spectator.NewOrchestrator(feedClient, rosterSource, cacheWriter, streamPublisher, broadcastHub, cfg.Feed)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	go broadcastHub.Run(ctx)

	// HTTP surface: websocket fan-out plus cached projection reads
	handler := handlers.NewHandler(broadcastHub, cacheWriter, ctx)

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	router.Get("/health", handler.HandleHealth)
	router.Get("/ws", handler.HandleWebSocket)
	router.Get("/games/{gameID}/boxscore", handler.HandleBoxScore)
	router.Get("/games/{gameID}/snapshot", handler.HandleSnapshot)

	server := &http.Server{Addr: cfg.Server.Addr, Handler: router}
	go func() {
		log.Printf("HTTP server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		server.Close()
	}()

	// Follow configured games until their feeds complete
	log.Println("Starting game followers...")
	orch.Start(ctx)

	log.Println("EMMOLB Spectator stopped")
}
