// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	APIBaseURL string
	UseMockAPI bool
	SQLiteDB   string
	JWTSecret  string
	CacheDir   string
	CacheTTL   time.Duration
}

// Load reads .env if present, then the environment. Every setting has a
// working default except JWTSecret, which callers must check.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:       getenv("PORT", "8080"),
		APIBaseURL: getenv("API_BASE_URL", "https://test-fe.mysellerpintar.com/api"),
		UseMockAPI: getbool("USE_MOCK_API", true),
		SQLiteDB:   getenv("SQLITE_DB", "artikel.db"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		CacheDir:   getenv("CACHE_DIR", "cache"),
		CacheTTL:   getduration("CACHE_TTL", time.Hour),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
