// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every environment-tunable setting this binary reads.
type Config struct {
	AppEnv   string
	LogLevel string

	// DefaultTimeLimitMs, DefaultSeed, and the weight fields seed the
	// application-layer defaults applied when a request omits its own
	// options.
	DefaultTimeLimitMs int
	DefaultSeed        int64
	WeightIdle         int
	WeightMakespan     int
	WeightPriority     int
	WeightArrival      int

	// CacheEnabled turns on the Redis-backed result cache; when false the
	// command handler runs with the no-op cache.
	CacheEnabled bool
	RedisURL     string
	CacheTTL     time.Duration

	// BreakerConsecutiveFailures and BreakerOpenDuration tune the circuit
	// breaker guarding the optimizer.
	BreakerConsecutiveFailures int
	BreakerOpenDuration        time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first, if present; real environment
// variables always take precedence over its contents.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DefaultTimeLimitMs: getIntEnv("CLINICSOLVE_TIME_LIMIT_MS", 10_000),
		DefaultSeed:        int64(getIntEnv("CLINICSOLVE_SEED", 42)),
		WeightIdle:         getIntEnv("CLINICSOLVE_WEIGHT_IDLE", 1000),
		WeightMakespan:     getIntEnv("CLINICSOLVE_WEIGHT_MAKESPAN", 10),
		WeightPriority:     getIntEnv("CLINICSOLVE_WEIGHT_PRIORITY", 100),
		WeightArrival:      getIntEnv("CLINICSOLVE_WEIGHT_ARRIVAL", 50),

		CacheEnabled: getBoolEnv("CLINICSOLVE_CACHE_ENABLED", false),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),
		CacheTTL:     getDurationEnv("CLINICSOLVE_CACHE_TTL", time.Hour),

		BreakerConsecutiveFailures: getIntEnv("CLINICSOLVE_BREAKER_FAILURES", 3),
		BreakerOpenDuration:        getDurationEnv("CLINICSOLVE_BREAKER_OPEN", 30*time.Second),
	}

	if cfg.DefaultTimeLimitMs <= 0 {
		return nil, fmt.Errorf("config: CLINICSOLVE_TIME_LIMIT_MS must be positive, got %d", cfg.DefaultTimeLimitMs)
	}

	return cfg, nil
}

// IsDevelopment reports whether AppEnv is "development".
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction reports whether AppEnv is "production".
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
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

func getBoolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return fallback
	}
	return b
}
