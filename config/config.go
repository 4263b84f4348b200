package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the site reads from the environment
type Config struct {
	Port                string
	DatabaseURL         string
	PublicURL           string
	SessionSecret       string
	CookieSecure        bool
	TwitterClientID     string
	TwitterClientSecret string
	AdminUserIDs        []string
	CorsAllowedOrigins  []string
	LogLevel            string
	GinMode             string
}

// LoadEnv loads environment variables from .env file
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using system environment variables")
	}
}

// GetEnv gets an environment variable or returns a default value if not present
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// Load reads the environment (after .env) into a Config
func Load() (Config, error) {
	LoadEnv()

	cfg := Config{
		Port:                GetEnv("PORT", "8080"),
		DatabaseURL:         GetEnv("DATABASE_URL", "sqlite://site.db"),
		PublicURL:           strings.TrimSuffix(GetEnv("PUBLIC_URL", "http://localhost:8080"), "/"),
		SessionSecret:       GetEnv("SESSION_SECRET", ""),
		CookieSecure:        GetEnv("COOKIE_SECURE", "true") != "false",
		TwitterClientID:     GetEnv("TWITTER_CLIENT_ID", ""),
		TwitterClientSecret: GetEnv("TWITTER_CLIENT_SECRET", ""),
		AdminUserIDs:        SplitCSV(GetEnv("ADMIN_USER_IDS", "")),
		CorsAllowedOrigins:  SplitCSV(GetEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:            GetEnv("LOG_LEVEL", "info"),
		GinMode:             GetEnv("GIN_MODE", "release"),
	}

	if cfg.SessionSecret == "" {
		return cfg, errors.New("SESSION_SECRET is required")
	}
	if len(cfg.CorsAllowedOrigins) == 0 {
		cfg.CorsAllowedOrigins = []string{"*"}
	}

	return cfg, nil
}

// SplitCSV splits a comma separated list and drops empty items
func SplitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
