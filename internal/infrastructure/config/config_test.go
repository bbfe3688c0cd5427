package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Client config
	assert.Equal(t, "httpdata/1.0", cfg.Client.UserAgent)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 3, cfg.Client.RetryMax)
	assert.Equal(t, time.Second, cfg.Client.RetryWaitMin)
	assert.Equal(t, 30*time.Second, cfg.Client.RetryWaitMax)
	assert.Zero(t, cfg.Client.RateLimitRPS)

	assert.False(t, cfg.Headers.VerboseLogging)
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"LOG_LEVEL":                "debug",
		"LOG_DEV":                  "true",
		"HTTP_USER_AGENT":          "probe/2.0",
		"HTTP_TIMEOUT":             "5s",
		"HTTP_RETRY_MAX":           "7",
		"HTTP_RETRY_WAIT_MIN":      "250ms",
		"HTTP_RETRY_WAIT_MAX":      "2s",
		"HTTP_RATE_LIMIT_RPS":      "12.5",
		"HTTP_LOG_VERBOSE_HEADERS": "true",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "probe/2.0", cfg.Client.UserAgent)
	assert.Equal(t, 5*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 7, cfg.Client.RetryMax)
	assert.Equal(t, 250*time.Millisecond, cfg.Client.RetryWaitMin)
	assert.Equal(t, 2*time.Second, cfg.Client.RetryWaitMax)
	assert.Equal(t, 12.5, cfg.Client.RateLimitRPS)
	assert.True(t, cfg.Headers.VerboseLogging)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "10s")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, 10*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Defaults still apply
	assert.Equal(t, "httpdata/1.0", cfg.Client.UserAgent)
	assert.Equal(t, 3, cfg.Client.RetryMax)
}

func TestLoadOrDefault(t *testing.T) {
	tests := []struct {
		name        string
		timeout     string
		wantTimeout time.Duration
	}{
		{name: "valid duration", timeout: "45s", wantTimeout: 45 * time.Second},
		{name: "invalid duration falls back", timeout: "soon", wantTimeout: 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HTTP_TIMEOUT", tt.timeout)
			cfg := LoadOrDefault()
			assert.Equal(t, tt.wantTimeout, cfg.Client.Timeout)
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("HTTP_RETRY_MAX", "many")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
