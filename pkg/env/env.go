package env

import "os"

// Get reads an environment variable, falling back when it is unset or empty.
// Typed, validated configuration lives in pkg/config; this covers the few
// process-level knobs read outside of it.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
