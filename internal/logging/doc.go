// Package logging provides structured logging using uber/zap.
//
// Two modes are available:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Logs go to stderr by default so command output on stdout stays clean.
// Header collections are logged through headers.LogView, which redacts
// credentials.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("request sent", zap.String("url", u.String()))
//	logger.Debug("headers", zap.Array("headers", h.LogView(false)))
package logging
