package config

import (
	"fmt"
	"os"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config carries the startup configuration, read from the environment.
type Config struct {
	HTTPPort    string
	Storage     string
	DatabaseURL string
}

// Load reads the configuration. FILMORATE_STORAGE selects the backend
// (memory by default); the postgres backend requires FILMORATE_DATABASE_URL.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort: getEnv("FILMORATE_HTTP_PORT", "8080"),
		Storage:  getEnv("FILMORATE_STORAGE", StorageMemory),
	}

	switch cfg.Storage {
	case StorageMemory:
	case StoragePostgres:
		cfg.DatabaseURL = os.Getenv("FILMORATE_DATABASE_URL")
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("FILMORATE_DATABASE_URL is required when FILMORATE_STORAGE=%s", StoragePostgres)
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want %q or %q)", cfg.Storage, StorageMemory, StoragePostgres)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
