package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// FeedConfig controls upstream feed polling.
type FeedConfig struct {
	// Base URL of the play-by-play feed API
	BaseURL string

	// Game IDs to follow (comma-separated GAME_IDS)
	GameIDs []string

	// Live single-game polling cadence
	PollInterval time.Duration

	// Slower cadence for compact/tile views
	TilePollInterval time.Duration

	// How long an empty cursor result suppresses refetching
	Staleness time.Duration

	// Per-fetch entry cap (0 = unbounded)
	FetchLimit int
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr string
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	URL string
}

// RosterConfig holds the optional league store connection. An empty DSN
// disables roster lookups; seeded runners then resolve as Unknown.
type RosterConfig struct {
	PostgresDSN string
}

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	Feed   FeedConfig
	Roster RosterConfig
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: getEnv("SERVER_ADDR", ":8080"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6380"),
		},
		Feed: FeedConfig{
			BaseURL:          getEnv("FEED_BASE_URL", ""),
			GameIDs:          splitList(getEnv("GAME_IDS", "")),
			PollInterval:     getEnvMillis("POLL_INTERVAL_MS", 6000),
			TilePollInterval: getEnvMillis("TILE_POLL_INTERVAL_MS", 15000),
			Staleness:        getEnvMillis("STALENESS_MS", 5000),
			FetchLimit:       getEnvInt("FETCH_LIMIT", 0),
		},
		Roster: RosterConfig{
			PostgresDSN: getEnv("POSTGRES_DSN", ""),
		},
	}
}

// getEnv retrieves an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable with a default value.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvMillis retrieves a millisecond duration environment variable.
func getEnvMillis(key string, defaultValue int) time.Duration {
	return time.Duration(getEnvInt(key, defaultValue)) * time.Millisecond
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
