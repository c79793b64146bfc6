package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// API server configuration
	APIPort    int
	CORSOrigin string

	// Database configuration
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string

	// Redis configuration
	RedisHost     string
	RedisPassword string
	RedisPort     string

	// Auth configuration
	Auth AuthConfig

	// Journal configuration
	Journal JournalConfig
}

// AuthConfig holds session configuration.
// When Enabled is false the API trusts the X-User-ID header, which is only
// acceptable behind an authenticating gateway or in development.
type AuthConfig struct {
	Enabled         bool
	ServiceKey      string
	SessionTTLHours int
}

// JournalConfig holds journal behaviour parameters and limits
type JournalConfig struct {
	// Caching
	StatsCacheTTLSeconds   int
	WebhookCacheTTLMinutes int

	// Outbound webhooks
	WebhookTimeoutSeconds int

	// CSV import
	ImportMaxRows int

	// Analytics
	DailyPnLDefaultDays int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		APIPort:    getEnvInt("API_PORT", 8080),
		CORSOrigin: getEnvOrDefault("CORS_ORIGIN", "*"),

		// Database configuration
		DatabaseHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DatabasePort:     getEnvOrDefault("DB_PORT", "5432"),
		DatabaseName:     getEnvOrDefault("DB_NAME", "trade_journal"),
		DatabaseUser:     getEnvOrDefault("DB_USER", "journal"),
		DatabasePassword: getEnvOrDefault("DB_PASSWORD", "journal123"),

		// Redis configuration
		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		// Auth configuration
		Auth: AuthConfig{
			Enabled:         getEnvOrDefault("AUTH_ENABLED", "false") == "true",
			ServiceKey:      os.Getenv("AUTH_SERVICE_KEY"),
			SessionTTLHours: getEnvInt("AUTH_SESSION_TTL_HOURS", 24),
		},

		// Journal configuration
		Journal: JournalConfig{
			StatsCacheTTLSeconds:   getEnvInt("JOURNAL_STATS_CACHE_TTL", 60),
			WebhookCacheTTLMinutes: getEnvInt("JOURNAL_WEBHOOK_CACHE_TTL", 60),
			WebhookTimeoutSeconds:  getEnvInt("JOURNAL_WEBHOOK_TIMEOUT", 10),
			ImportMaxRows:          getEnvInt("JOURNAL_IMPORT_MAX_ROWS", 5000),
			DailyPnLDefaultDays:    getEnvInt("JOURNAL_DAILY_PNL_DAYS", 90),
		},
	}
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
