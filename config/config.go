package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultBaseURL = "http://34.87.39.167:9082/api/v1"

	// Fallback signing key for the local session token. A real deployment
	// sets SESSION_SECRET; the token never leaves the user's machine.
	defaultSecret = "movie-booking-cli-dev-secret"
)

// Config holds runtime configuration. Every field maps to an environment
// variable, with an optional .env file loaded first.
type Config struct {
	BaseURL       string // MOVIE_API_BASE_URL: backend base URL, versioned prefix included
	SessionSecret string // SESSION_SECRET: HMAC key for the local session token
	SessionFile   string // SESSION_FILE: session file override (tests)
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		BaseURL:       getenv("MOVIE_API_BASE_URL", defaultBaseURL),
		SessionSecret: getenv("SESSION_SECRET", defaultSecret),
		SessionFile:   os.Getenv("SESSION_FILE"),
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return Config{}, errors.New("MOVIE_API_BASE_URL must not be empty")
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

func getenv(key string, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
