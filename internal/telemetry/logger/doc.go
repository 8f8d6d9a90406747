// Package logger provides structured logging for respkv.
//
// It wraps the standard library log/slog:
//
//   - logger.go: Logger interface, JSON/text handlers, dynamic level
//   - context.go: context propagation of the logger, connection and request ids
//   - redact.go: masking of client payloads and sensitive fields
//
// The level is held in a process-wide slog.LevelVar so a configuration
// reload can change it without rebuilding loggers.
package logger
