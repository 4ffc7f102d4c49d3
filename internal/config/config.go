// Package config reads process settings from the environment, after
// loading an optional .env file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	HTTPPort    string
	LogLevel    string

	JWTSecret    string
	JWTExpiresIn time.Duration

	// ECBWorkers is passed to the block driver; zero means one per CPU.
	ECBWorkers  int
	MaxUploadMB int64

	AdminEmail    string
	AdminPassword string
}

// Load reads .env files (missing files are ignored) and then the
// environment. Variables already set in the environment win.
func Load(files ...string) Config {
	_ = godotenv.Load(files...)
	return Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		HTTPPort:      getenv("HTTP_PORT", "8080"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiresIn:  duration("JWT_EXPIRES_IN", 24*time.Hour),
		ECBWorkers:    int(integer("ECB_WORKERS", 0)),
		MaxUploadMB:   integer("MAX_UPLOAD_MB", 32),
		AdminEmail:    getenv("ADMIN_EMAIL", "admin@aesecb.local"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func duration(key string, def time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return def
}

func integer(key string, def int64) int64 {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
