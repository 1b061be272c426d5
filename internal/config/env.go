package config

import (
	"strings"
	"time"
)

func stringOrDefault(val, defaultValue string) string {
	if strings.TrimSpace(val) == "" {
		return defaultValue
	}
	return strings.TrimSpace(val)
}

func durationOrDefault(val, defaultValue time.Duration) time.Duration {
	if val <= 0 {
		return defaultValue
	}
	return val
}

// parseBool accepts 1/true/yes and 0/false/no; anything else yields defaultValue.
func parseBool(raw string, defaultValue bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultValue
	}
	if raw == "1" || strings.EqualFold(raw, "true") || strings.EqualFold(raw, "yes") {
		return true
	}
	if raw == "0" || strings.EqualFold(raw, "false") || strings.EqualFold(raw, "no") {
		return false
	}
	return defaultValue
}
