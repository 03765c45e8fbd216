package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port                  string
	GinMode               string
	LogLevel              string
	ServerReadTimeout     time.Duration
	ServerWriteTimeout    time.Duration
	ServerShutdownTimeout time.Duration

	// Tracing settings
	SessionHeader     string
	CorrelationHeader string

	// MCP settings. BaseURL is the externally visible base used when
	// advertising the message endpoint to SSE clients; empty means
	// relative URLs.
	BaseURL string

	// CORS settings
	CORSAllowedOrigins string
}

// Load reads configuration from environment variables.
// Returns an error if any configuration value is invalid.
func Load() (*Config, error) {
	cfg := &Config{
		// Server settings
		Port:     getEnvDefault("PORT", "8081"),
		GinMode:  getEnvDefault("GIN_MODE", "debug"),
		LogLevel: getEnvDefault("LOG_LEVEL", "info"),

		// Tracing settings
		SessionHeader:     getEnvDefault("SESSION_HEADER", "X-Session-ID"),
		CorrelationHeader: getEnvDefault("CORRELATION_HEADER", "X-Correlation-ID"),

		// MCP settings
		BaseURL: os.Getenv("BASE_URL"),

		// CORS settings
		CORSAllowedOrigins: getEnvDefault("CORS_ALLOWED_ORIGINS", "*"),
	}

	// Parse duration values
	var err error
	if cfg.ServerReadTimeout, err = getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ServerWriteTimeout, err = getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ServerShutdownTimeout, err = getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all configuration values are valid.
func (c *Config) validate() error {
	// Validate GIN_MODE
	if c.GinMode != "debug" && c.GinMode != "release" && c.GinMode != "test" {
		return fmt.Errorf("invalid GIN_MODE: %s (must be debug, release, or test)", c.GinMode)
	}

	// Validate log level
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warn" && c.LogLevel != "error" {
		return fmt.Errorf("invalid LOG_LEVEL: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	// Validate timeouts
	if c.ServerReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if c.ServerWriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if c.ServerShutdownTimeout <= 0 {
		return fmt.Errorf("SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	// Validate trace headers
	if c.SessionHeader == "" {
		return fmt.Errorf("SESSION_HEADER must not be empty")
	}
	if c.CorrelationHeader == "" {
		return fmt.Errorf("CORRELATION_HEADER must not be empty")
	}

	return nil
}

// getEnvDefault gets an environment variable with a default value.
func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value.
// Returns an error if the value cannot be parsed as a duration.
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration value for %s: %s", key, value)
	}
	return d, nil
}
