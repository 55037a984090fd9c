// Package env reads process environment values with a fallback.
package env

import "os"

// Get looks up key in the process environment. Unset and blank values both
// yield the fallback.
func Get(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
