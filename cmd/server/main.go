package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/driftchat/backend/internal/admin"
	"github.com/driftchat/backend/internal/api"
	"github.com/driftchat/backend/internal/config"
	"github.com/driftchat/backend/internal/database"
	"github.com/driftchat/backend/internal/matchmaking"
	"github.com/driftchat/backend/internal/migrations"
	"github.com/driftchat/backend/internal/redis"
	"github.com/driftchat/backend/internal/rooms"
	"github.com/driftchat/backend/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations on start if requested
	if os.Getenv("MIGRATE_ON_START") == "true" {
		log.Println("↗ Running DB migrations on startup...")
		if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Apply runtime config overrides from the database
	if err := admin.ApplyRuntimeConfigToConfig(db, cfg); err != nil {
		log.Printf("[CONFIG] Could not apply runtime config overrides: %v", err)
	}

	// Initialize Redis
	rdb, err := redis.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	// Wire the matchmaking engine to the websocket hub and room store
	store := rooms.NewStore(db, rdb, time.Duration(cfg.RoomCacheTTLSeconds)*time.Second)
	hub := ws.NewHub()
	engine := matchmaking.NewEngine(hub, store, matchmaking.NewPresence(rdb), cfg.SeedMessage)
	hub.SetEngine(engine)
	go hub.Run()

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Initialize API handlers
	api.SetupRoutes(router, db, rdb, store, hub, cfg)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting DriftChat server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
