package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

var boolWords = map[string]bool{
	"1": true, "true": true, "yes": true, "on": true,
	"0": false, "false": false, "no": false, "off": false,
}

// lookup returns the trimmed value of key; blank counts as unset.
func lookup(key string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	return raw, raw != ""
}

func envOrDefault(key, defaultValue string) string {
	if val, ok := lookup(key); ok {
		return val
	}
	return defaultValue
}

// lowerEnvOrDefault is envOrDefault for enum-like settings (backends, log levels).
func lowerEnvOrDefault(key, defaultValue string) string {
	return strings.ToLower(envOrDefault(key, defaultValue))
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

func intEnvOrDefault(key string, defaultValue int) int {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	if val, known := boolWords[strings.ToLower(raw)]; known {
		return val
	}
	return defaultValue
}
