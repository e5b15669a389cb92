package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultSQLitePath is the local database file used when DATABASE_URL is unset.
const DefaultSQLitePath = "terarium_data.db"

// Config holds the application's configuration.
type Config struct {
	DatabaseURL string
	Port        string
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (Config, error) {
	// load env variables
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on system environment variables")
	}

	cfg := Config{
		DatabaseURL: NormalizeDatabaseURL(os.Getenv("DATABASE_URL")),
		Port:        getEnv("PORT", "8000"),
	}
	return cfg, nil
}

// NormalizeDatabaseURL maps the legacy "postgres://" scheme (still emitted by
// some hosting providers) to "postgresql://" and falls back to the local
// SQLite file when no URL is configured.
func NormalizeDatabaseURL(url string) string {
	if url == "" {
		return "sqlite://" + DefaultSQLitePath
	}
	if strings.HasPrefix(url, "postgres://") {
		url = "postgresql://" + strings.TrimPrefix(url, "postgres://")
	}
	return url
}

// getEnv returns the value of key, or fallback if it is not set.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
