package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "data/serving/nba.sqlite", cfg.SQLitePath)
	assert.Equal(t, "data/raw", cfg.RawDataDir)
	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 25, cfg.GamesDefaultLimit)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STATLINE_DB_PATH", "/tmp/other.sqlite")
	t.Setenv("API_PORT", "9000")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.sqlite", cfg.SQLitePath)
	assert.Equal(t, 9000, cfg.APIPort)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
}

func TestLoadPostgresRequiresURL(t *testing.T) {
	t.Setenv("STATLINE_DB_DRIVER", DriverPostgres)
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/statline")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STATLINE_DB_DRIVER", "oracle")

	_, err := Load()
	assert.Error(t, err)
}
