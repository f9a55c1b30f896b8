package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Random chat
	SeedMessage         string
	MaxMessageLength    int
	RoomCacheTTLSeconds int

	// Security
	JWTSecret       string
	GuestTokenHours int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/driftchat?sslmode=disable"),

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Random chat
		SeedMessage:         getEnv("SEED_MESSAGE", "You are now chatting with a random partner. Say hi!"),
		MaxMessageLength:    getEnvInt("MAX_MESSAGE_LENGTH", 2000),
		RoomCacheTTLSeconds: getEnvInt("ROOM_CACHE_TTL_SECONDS", 3600),

		// Security
		JWTSecret:       getEnv("JWT_SECRET", "change-me-in-production"),
		GuestTokenHours: getEnvInt("GUEST_TOKEN_HOURS", 24),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
