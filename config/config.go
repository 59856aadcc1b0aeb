// Package config provides configuration for the shopping assistant service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Turn archive database
	DatabaseURL string

	// Engine endpoints
	LLMBaseURL    string
	SearchBaseURL string

	// Timeouts
	TurnTimeout   time.Duration
	EngineTimeout time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:      getEnvInt("HTTP_PORT", 8000),
		DatabaseURL:   getEnv("DATABASE_URL", "file:assistant.db?cache=shared&mode=rwc"),
		LLMBaseURL:    getEnv("LLM_BASE_URL", "https://api.openai.com"),
		SearchBaseURL: getEnv("SEARCH_BASE_URL", "https://api.tavily.com"),
		TurnTimeout:   time.Duration(getEnvInt("TURN_TIMEOUT_MS", 120000)) * time.Millisecond,
		EngineTimeout: time.Duration(getEnvInt("ENGINE_TIMEOUT_MS", 60000)) * time.Millisecond,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
