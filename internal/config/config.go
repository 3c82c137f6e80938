package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all server settings, populated from environment variables.
type Config struct {
	DatabaseURL string
	DBDriver    string
	SQLitePath  string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// CreateRatePerMinute bounds POST /hedgehog; zero disables the limiter.
	CreateRatePerMinute int
	CORSOrigins         []string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := time.ParseDuration(envOrDefault("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil || shutdownTimeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}

	rate, err := strconv.Atoi(envOrDefault("CREATE_RATE_PER_MINUTE", "30"))
	if err != nil || rate < 0 {
		return nil, errors.New("invalid CREATE_RATE_PER_MINUTE")
	}

	cfg := &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		DBDriver:            strings.ToLower(envOrDefault("DB_DRIVER", DriverPostgres)),
		SQLitePath:          envOrDefault("SQLITE_PATH", "data/hedgehogs.db"),
		HTTPAddr:            envOrDefault("HTTP_ADDR", ":5050"),
		LogLevel:            envOrDefault("LOG_LEVEL", "info"),
		LogFormat:           envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:     shutdownTimeout,
		CreateRatePerMinute: rate,
		CORSOrigins:         splitList(envOrDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required when DB_DRIVER is postgres")
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLITE_PATH is required when DB_DRIVER is sqlite")
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("unsupported LOG_FORMAT %q", cfg.LogFormat)
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
