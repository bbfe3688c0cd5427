// Package config provides 12-factor configuration management.
//
// Configuration is loaded from environment variables with sensible defaults.
//
// Configuration Sections:
//   - Logging: Log level and output format
//   - Client: Outbound HTTP client settings (user agent, timeout, retries, rate limit)
//   - Headers: Header logging policy
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	c := client.New(cfg.Client, logger)
//
// Environment Variables:
//   - LOG_LEVEL, LOG_DEV
//   - HTTP_USER_AGENT, HTTP_TIMEOUT, HTTP_RETRY_MAX
//   - HTTP_RETRY_WAIT_MIN, HTTP_RETRY_WAIT_MAX, HTTP_RATE_LIMIT_RPS
//   - HTTP_LOG_VERBOSE_HEADERS
package config
