// Package env provides raw environment lookups for code that runs before the
// typed config is loaded, such as logger bootstrap.
package env

import "os"

// Get returns the environment variable value, or fallback when unset or empty.
func Get(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}
