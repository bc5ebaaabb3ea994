// Package secrets identifies credential-bearing field names so they never reach the logs.
package secrets

import (
	"log/slog"
	"strings"
)

// Redacted replaces the value of a sensitive field.
const Redacted = "[REDACTED]"

// DefaultSensitivePatterns are matched case-insensitively against field names.
var DefaultSensitivePatterns = []string{
	"PASSWORD",
	"TOKEN",
	"SECRET",
	"AUTHORIZATION",
	"CONFIRMATION_CODE",
	"CONFIRMATIONCODE",
	"SESSION",
}

// IsSensitiveKey reports whether key matches one of the default patterns.
func IsSensitiveKey(key string) bool {
	return IsSensitiveKeyWithPatterns(key, DefaultSensitivePatterns)
}

// IsSensitiveKeyWithPatterns reports whether key contains any of patterns, ignoring case.
func IsSensitiveKeyWithPatterns(key string, patterns []string) bool {
	upperKey := strings.ToUpper(key)
	for _, pattern := range patterns {
		if strings.Contains(upperKey, pattern) {
			return true
		}
	}
	return false
}

// SensitiveKeys returns the keys of fields that should be redacted.
func SensitiveKeys(fields map[string]any) []string {
	names := []string{}
	for key := range fields {
		if IsSensitiveKey(key) {
			names = append(names, key)
		}
	}
	return names
}

// RedactAttr masks sensitive attributes. Map values are copied with their sensitive
// entries masked; the caller's map is left untouched.
func RedactAttr(a slog.Attr) slog.Attr {
	if IsSensitiveKey(a.Key) {
		return slog.String(a.Key, Redacted)
	}
	if a.Value.Kind() != slog.KindAny {
		return a
	}

	switch m := a.Value.Any().(type) {
	case map[string]string:
		out := make(map[string]string, len(m))
		for k, v := range m {
			if IsSensitiveKey(k) {
				v = Redacted
			}
			out[k] = v
		}
		return slog.Any(a.Key, out)
	case map[string]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			if IsSensitiveKey(k) {
				v = Redacted
			}
			out[k] = v
		}
		return slog.Any(a.Key, out)
	default:
		return a
	}
}
