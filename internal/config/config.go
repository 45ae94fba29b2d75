// README: Config loader with env defaults for HTTP, Redis, DB, and AI keys.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	Redis struct {
		Addr string
	}
	DB struct {
		// DSN is optional; empty disables usage metering.
		DSN string
	}
	Usage struct {
		MonthlyCalls int
	}
	Session struct {
		TTL time.Duration
	}
	AI struct {
		GeminiKey string
	}
	Search struct {
		APIKey   string
		EngineID string
		MapsKey  string
	}
	LogLevel string
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TRAVELAI_HTTP_ADDR", ":8080")
	cfg.Redis.Addr = envOrDefault("TRAVELAI_REDIS_ADDR", "localhost:6379")
	cfg.DB.DSN = os.Getenv("TRAVELAI_DB_DSN")
	// 0 means "use the metering default".
	cfg.Usage.MonthlyCalls = envOrDefaultInt("TRAVELAI_MONTHLY_CALLS", 0)
	cfg.Session.TTL = envOrDefaultDuration("TRAVELAI_SESSION_TTL", 24*time.Hour)
	cfg.AI.GeminiKey = envOrError("GEMINI_API_KEY")
	cfg.Search.APIKey = os.Getenv("SEARCH_API_KEY")
	cfg.Search.EngineID = os.Getenv("SEARCH_ENGINE_ID")
	cfg.Search.MapsKey = os.Getenv("MAPS_API_KEY")
	cfg.LogLevel = envOrDefault("TRAVELAI_LOG_LEVEL", "info")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	panic("environment variable " + key + " is required")
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
