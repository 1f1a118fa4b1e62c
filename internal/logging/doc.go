// Package logging provides structured logging utilities for the aireply
// application.
//
// This package centralizes logging patterns to ensure consistent,
// structured logging throughout the codebase using the standard
// library's slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "inbox.fetch")
//	logger.Info("inbox loaded", logging.Status(logging.StatusSuccess))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("reply sent", logging.UserHash(email))
//
// # Security Considerations
//
// User emails are hashed to prevent PII leakage while still allowing
// correlation, and tokens are never logged directly (see SanitizeToken).
package logging
