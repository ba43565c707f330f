// Package config provides configuration management functionality.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     int
	LogLevel string
	DevMode  bool

	// Model call settings. An empty API key disables the model path and
	// every recommendation falls back to the rule engine.
	AnthropicAPIKey string
	Model           string
	MaxTokens       int
	Temperature     float64
	ModelTimeout    time.Duration

	// Analysis defaults
	DefaultCurrency string
	CacheTimeout    time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvAsInt("PORT", 8000),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DevMode:         getEnvAsBool("DEV_MODE", false),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		Model:           getEnv("AI_MODEL", "claude-sonnet-4-20250514"),
		MaxTokens:       getEnvAsInt("MAX_TOKENS", 1000),
		Temperature:     getEnvAsFloat("TEMPERATURE", 0.7),
		ModelTimeout:    time.Duration(getEnvAsInt("MODEL_TIMEOUT_SECONDS", 60)) * time.Second,
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "USD"),
		CacheTimeout:    time.Duration(getEnvAsInt("CACHE_TIMEOUT", 300)) * time.Second,
	}

	return cfg, nil
}

// ModelEnabled reports whether the model-backed recommendation path is
// configured.
func (c *Config) ModelEnabled() bool {
	return c.AnthropicAPIKey != ""
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
