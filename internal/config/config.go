package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	Port string `json:"port"`
	Host string `json:"host"`

	// Pipeline settings
	FetchTimeoutSeconds int    `json:"fetch_timeout_seconds"`
	PrioritySource      string `json:"priority_source"`

	// Zone settings
	ZonesFile       string `json:"zones_file"`
	RefreshSchedule string `json:"refresh_schedule"` // cron expression for background zone refresh

	// Cache settings
	CacheType     string `json:"cache_type"`     // "memory" or "cloud-storage"
	CacheDuration int    `json:"cache_duration"` // in minutes
}

// Load reads configuration from environment variables and .env file.
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	config := &Config{
		Port:                getEnvOrDefault("PORT", "8080"),
		Host:                getEnvOrDefault("HOST", "0.0.0.0"),
		FetchTimeoutSeconds: getEnvOrDefaultInt("FETCH_TIMEOUT_SECONDS", 8),
		PrioritySource:      getEnvOrDefault("PRIORITY_SOURCE", "INSpark"),
		ZonesFile:           getEnvOrDefault("ZONES_FILE", ""),
		RefreshSchedule:     getEnvOrDefault("REFRESH_SCHEDULE", "*/30 * * * *"),
		CacheType:           getEnvOrDefault("CACHE_TYPE", "memory"),
		CacheDuration:       getEnvOrDefaultInt("CACHE_DURATION_MINUTES", 30),
	}

	return config, config.validate()
}

// validate checks if configuration values are usable.
func (c *Config) validate() error {
	if c.FetchTimeoutSeconds <= 0 {
		return &ConfigError{Field: "FETCH_TIMEOUT_SECONDS", Message: "must be positive"}
	}
	if c.CacheDuration <= 0 {
		return &ConfigError{Field: "CACHE_DURATION_MINUTES", Message: "must be positive"}
	}
	if c.CacheType != "memory" && c.CacheType != "cloud-storage" {
		return &ConfigError{Field: "CACHE_TYPE", Message: "must be memory or cloud-storage"}
	}
	return nil
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set.
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
