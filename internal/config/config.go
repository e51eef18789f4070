// Package config loads the application configuration from environment
// variables with sensible defaults for local development.
package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	Port          string
	DBPath        string
	EventID       string
	RemoteBaseURL string
	RemoteToken   string
	AdminHash     string // bcrypt hash of the admin password
	JWTSecret     string
	BaseURL       string // public base URL invitation links are built on
	CORSOrigins   string
	MaxDocBytes   int
}

// Load reads configuration from environment variables or defaults.
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "invitado.db"),
		EventID:       getEnv("EVENT_ID", "default"),
		RemoteBaseURL: getEnv("REMOTE_BASE_URL", ""),
		RemoteToken:   getEnv("REMOTE_TOKEN", ""),
		AdminHash:     getEnv("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		BaseURL:       getEnv("PUBLIC_BASE_URL", "http://localhost:8080/"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
		MaxDocBytes:   getEnvInt("MAX_DOCUMENT_BYTES", 0),
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
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
