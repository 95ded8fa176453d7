// Package config provides centralized configuration loaded from environment
// variables. Shared by cmd/api and the statline CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backend drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is populated from environment variables with sensible defaults.
type Config struct {
	// Store
	DBDriver    string // sqlite or postgres
	SQLitePath  string // serving file, sqlite driver
	DatabaseURL string // DSN, postgres driver

	// ETL
	RawDataDir string

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Response cache
	CacheEnabled bool

	// Per-game table limit when the query names no window
	GamesDefaultLimit int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		DBDriver:    envOr("STATLINE_DB_DRIVER", DriverSQLite),
		SQLitePath:  envOr("STATLINE_DB_PATH", "data/serving/nba.sqlite"),
		DatabaseURL: envOr("DATABASE_URL", ""),

		RawDataDir: envOr("STATLINE_RAW_DIR", "data/raw"),

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),

		GamesDefaultLimit: envInt("GAMES_DEFAULT_LIMIT", 25),
	}

	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("STATLINE_DB_PATH must be set for the sqlite driver")
		}
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL must be set for the postgres driver")
		}
	default:
		return nil, fmt.Errorf("unknown STATLINE_DB_DRIVER %q (want sqlite or postgres)", cfg.DBDriver)
	}

	return cfg, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
