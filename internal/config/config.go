package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	DBConnString    string
	RedisAddr       string
	JWTSecret       string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
	BlueprintDelay  time.Duration
	CORSOrigins     []string
}

// FromEnv builds Config with defaults, overridden by environment variables.
// Leaving DB_DSN or REDIS_ADDR empty selects the in-memory catalog or
// key/value store respectively.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		DBConnString:    os.Getenv("DB_DSN"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		JWTSecret:       envOrDefault("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:        envHours("TOKEN_TTL_HOURS", 24*time.Hour),
		ShutdownTimeout: envSeconds("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		BlueprintDelay:  envMillis("BLUEPRINT_DELAY_MS", 0),
		CORSOrigins:     envList("CORS_ORIGINS", []string{"*"}),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return def
}

func envHours(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Hour
		}
	}
	return def
}

func envMillis(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Millisecond
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
