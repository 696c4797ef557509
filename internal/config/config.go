package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabaseURL     string
	DatabasePath    string
	SessionDuration time.Duration
	MigrationsPath  string

	// Base URL used when building links in outbound email
	AppBaseURL string

	// SES email settings. Email sending is disabled when FromEmail is empty.
	AWSRegion string
	FromEmail string
	FromName  string

	// OAuth provider credentials
	GoogleClientID       string
	GoogleClientSecret   string
	FacebookClientID     string
	FacebookClientSecret string
	AppleClientID        string
	AppleClientSecret    string
	OAuthRedirectBaseURL string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	// Load .env if present, environment variables take precedence
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		DatabasePath:    getEnv("DB_PATH", "./cupping.db"),
		SessionDuration: getDurationEnv("SESSION_DURATION", 24*time.Hour),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),

		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:8080"),

		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		FromEmail: getEnv("SES_FROM_EMAIL", ""),
		FromName:  getEnv("SES_FROM_NAME", "Coffee Cupping"),

		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		FacebookClientID:     getEnv("FACEBOOK_CLIENT_ID", ""),
		FacebookClientSecret: getEnv("FACEBOOK_CLIENT_SECRET", ""),
		AppleClientID:        getEnv("APPLE_CLIENT_ID", ""),
		AppleClientSecret:    getEnv("APPLE_CLIENT_SECRET", ""),
		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv reads a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
