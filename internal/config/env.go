package config

import (
	"os"

	"github.com/joho/godotenv"
)

// ResolveAPIKey returns the value of envName, falling back to the given
// dotenv files in order. The process environment is never modified.
// An empty string means the key could not be found anywhere.
func ResolveAPIKey(envName string, files ...string) string {
	if envName == "" {
		return ""
	}
	if value := os.Getenv(envName); value != "" {
		return value
	}

	for _, file := range files {
		if !fileExists(file) {
			continue
		}
		values, err := godotenv.Read(file)
		if err != nil {
			continue
		}
		if value := values[envName]; value != "" {
			return value
		}
	}
	return ""
}

// APIKey resolves the pro layer's API key using its configured sources
func (c ProConfig) APIKey() string {
	return ResolveAPIKey(c.APIKeyEnv, c.EnvFiles...)
}
