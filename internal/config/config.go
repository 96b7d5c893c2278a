package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const defaultRequestTimeout = 30 * time.Second

type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	StatePath      string
	LogLevel       string
	Env            string
}

// Load loads configuration from environment variables only.
func Load() (*Config, error) {
	return LoadWithFile("")
}

// LoadWithFile loads configuration from an optional .env file and environment variables.
func LoadWithFile(envFile string) (*Config, error) {
	// Attempt to load .env file if provided, but don't fail if it doesn't exist.
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		APIBaseURL:     os.Getenv("CHARGEHIVE_API_URL"),
		RequestTimeout: parseTimeout(os.Getenv("CHARGEHIVE_TIMEOUT")),
		StatePath:      os.Getenv("CHARGEHIVE_STATE_PATH"),
		LogLevel:       getEnvOrDefault("CHARGEHIVE_LOG_LEVEL", "info"),
		Env:            getEnvOrDefault("CHARGEHIVE_ENV", "development"),
	}

	if cfg.StatePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot resolve state path: %w", err)
		}
		cfg.StatePath = filepath.Join(home, ".chargehive")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required fields are set.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("CHARGEHIVE_API_URL is required")
	}
	return nil
}

// IsProduction reports whether the client runs with production logging.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// parseTimeout converts a duration string to the per-request timeout,
// defaulting to 30s.
func parseTimeout(s string) time.Duration {
	if s == "" {
		return defaultRequestTimeout
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultRequestTimeout
	}
	return d
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
