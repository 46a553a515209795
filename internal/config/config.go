package config

import (
	"fmt"
	"os"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port         string
	DBConn       string
	JWTSecret    string
	OwnerID      string
	SnapshotPath string
}

// New loads configuration from environment variables.
// DBConn may be empty, in which case the service runs snapshot-only with the
// remote backend disabled.
func New() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DBConn:       os.Getenv("DB_CONN"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		OwnerID:      os.Getenv("OWNER_ID"),
		SnapshotPath: getEnv("SNAPSHOT_PATH", "finance-store.json"),
	}

	if cfg.OwnerID == "" {
		return nil, fmt.Errorf("OWNER_ID is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
