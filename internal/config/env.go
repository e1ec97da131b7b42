package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env from the working directory into the environment.
// A missing file is not an error worth surfacing; callers ignore it and
// fall back to the system environment or flag defaults.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	return godotenv.Load(paths...)
}

// Env returns the value of the environment variable named by key, or
// fallback if the variable is unset or empty.
func Env(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}
