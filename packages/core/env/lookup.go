package env

import (
	"net/http"
	"os"
	"strconv"
	"strings"
)

// DebugVar is the variable that switches failure reports to stdout.
const DebugVar = "APP_DEBUG"

func String(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// Bool accepts true/1/yes/on in any case as true; any other non-empty value is false.
func Bool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes", "on":
			return true
		}
		return false
	}
	return defaultVal
}

func Int(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func Float(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

// Debug reports whether APP_DEBUG is set to a true value.
func Debug() bool {
	return Bool(DebugVar, false)
}

// Headers collects header defaults from variables named prefix+NAME.
// Underscores in NAME become dashes: COMMUNICATOR_HEADER_X_API_KEY=abc
// yields "X-Api-Key: abc".
func Headers(prefix string) map[string]string {
	result := make(map[string]string)
	for key, value := range LoadSystemEnv(prefix) {
		name := strings.ReplaceAll(key, "_", "-")
		result[http.CanonicalHeaderKey(name)] = value
	}
	return result
}

// LoadSystemEnv returns the OS environment restricted to keys starting with
// prefix, with the prefix removed. An empty prefix returns everything.
func LoadSystemEnv(prefix string) map[string]string {
	result := make(map[string]string)
	for _, e := range os.Environ() {
		key, value, found := strings.Cut(e, "=")
		if !found {
			continue
		}
		if prefix == "" {
			result[key] = value
		} else if len(key) > len(prefix) && strings.HasPrefix(key, prefix) {
			result[key[len(prefix):]] = value
		}
	}
	return result
}
