package config

import "os"

// GetEnv reads an environment variable. Defaults are handled at the call
// site so each caller can log its own warning.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvOrDefault reads an environment variable with a fallback value.
func GetEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
