package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.UseMockAPI)
	assert.Equal(t, "artikel.db", cfg.SQLiteDB)
	assert.Equal(t, "cache", cfg.CacheDir)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("USE_MOCK_API", "false")
	t.Setenv("SQLITE_DB", "/tmp/test.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CACHE_TTL", "30m")

	cfg := Load()
	assert.Equal(t, "9999", cfg.Port)
	assert.False(t, cfg.UseMockAPI)
	assert.Equal(t, "/tmp/test.db", cfg.SQLiteDB)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("USE_MOCK_API", "not-a-bool")
	t.Setenv("CACHE_TTL", "soon")

	cfg := Load()
	assert.True(t, cfg.UseMockAPI)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
}
