package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

// Attribute keys that carry client payload. Their values are masked unless
// Config.ShowValues is set, and truncated when shown.
var payloadKeys = map[string]bool{
	"value":   true,
	"payload": true,
	"frame":   true,
}

// Sensitive key patterns that should always be redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"credential",
	"auth",
	"bearer",
}

const (
	redactedValue = "***REDACTED***"

	// maxPreview is the number of bytes kept when a payload is shown.
	maxPreview = 64
)

func sanitize(a slog.Attr, showValues bool) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		s := a.Value.String()
		if s == "" {
			return a
		}
		if IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
		if payloadKeys[a.Key] {
			if !showValues {
				return slog.String(a.Key, MaskValue(s))
			}
			return slog.String(a.Key, Truncate(s, maxPreview))
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = sanitize(attr, showValues)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

// MaskValue hides a payload but keeps its length.
func MaskValue(s string) string {
	return fmt.Sprintf("***(%d bytes)", len(s))
}

// Truncate shortens s to at most n bytes, noting how much was dropped.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return fmt.Sprintf("%s...(%d more bytes)", s[:n], len(s)-n)
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
