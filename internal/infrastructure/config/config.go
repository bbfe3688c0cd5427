package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Logging LogConfig
	Client  ClientConfig
	Headers HeaderConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// ClientConfig holds outbound HTTP client configuration.
type ClientConfig struct {
	UserAgent    string        `envconfig:"HTTP_USER_AGENT" default:"httpdata/1.0"`
	Timeout      time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	RetryMax     int           `envconfig:"HTTP_RETRY_MAX" default:"3"`
	RetryWaitMin time.Duration `envconfig:"HTTP_RETRY_WAIT_MIN" default:"1s"`
	RetryWaitMax time.Duration `envconfig:"HTTP_RETRY_WAIT_MAX" default:"30s"`
	// RateLimitRPS of zero disables client-side rate limiting.
	RateLimitRPS float64 `envconfig:"HTTP_RATE_LIMIT_RPS" default:"0"`
}

// HeaderConfig controls how header values are logged.
type HeaderConfig struct {
	// VerboseLogging logs credential headers in clear text.
	VerboseLogging bool `envconfig:"HTTP_LOG_VERBOSE_HEADERS" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Client: ClientConfig{
			UserAgent:    "httpdata/1.0",
			Timeout:      30 * time.Second,
			RetryMax:     3,
			RetryWaitMin: 1 * time.Second,
			RetryWaitMax: 30 * time.Second,
		},
	}
}
