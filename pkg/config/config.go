// Package config reads the server settings from the environment once at
// startup.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lborres/kindercrew/pkg/logger"
)

type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendFile     Backend = "file"
	BackendRedis    Backend = "redis"
	BackendPostgres Backend = "postgres"
)

// DefaultHTTPAddr is loopback only. The process holds one login shared by
// every caller, so it must not be reachable from other hosts by default.
const DefaultHTTPAddr = "127.0.0.1:8080"

type Config struct {
	// Server
	HTTPAddr string

	// Storage
	Backend     Backend
	StorageDir  string
	RedisAddr   string
	RedisTTL    time.Duration
	DatabaseURL string

	// Validator
	ValidatorLatency time.Duration

	// Rate limit
	LoginRatePerMinute int

	// Logging
	LogLevel slog.Level
}

// Load reads Config from the environment. Backends that need a connection
// string fail when it is missing.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:           getenv("HTTP_ADDR", DefaultHTTPAddr),
		Backend:            Backend(strings.ToLower(getenv("STORAGE_BACKEND", string(BackendMemory)))),
		StorageDir:         getenv("STORAGE_DIR", "./data"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisTTL:           getenvDuration("REDIS_TTL", 0),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		ValidatorLatency:   getenvDuration("VALIDATOR_LATENCY", 0),
		LoginRatePerMinute: getenvInt("LOGIN_RATE_PER_MINUTE", 10),
	}

	level, err := logger.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	switch cfg.Backend {
	case BackendMemory, BackendFile:
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required for the %s backend", cfg.Backend)
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the %s backend", cfg.Backend)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.Backend)
	}

	if cfg.LoginRatePerMinute <= 0 {
		return nil, fmt.Errorf("LOGIN_RATE_PER_MINUTE must be positive, got %d", cfg.LoginRatePerMinute)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
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
