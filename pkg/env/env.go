package env

import "os"

// Get reads an environment variable, falling back when it is unset or empty.
// The logger uses this before config loading has happened, so it cannot go
// through envconfig.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
