package config

import (
	"time"
)

// RateLimitConfig controls the Redis token-bucket limiter applied to the
// auth endpoints.  Capacity is the burst size; RefillTokens are added every
// RefillInterval.  TTL bounds how long idle buckets live in Redis.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig, clamping nonsensical values to usable minimums.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        getenv("RATE_LIMIT_ENABLED", "true") == "true",
		Capacity:       atoiOr(getenv("RATE_LIMIT_CAPACITY", ""), 30),
		RefillTokens:   atoiOr(getenv("RATE_LIMIT_REFILL_TOKENS", ""), 1),
		RefillInterval: parseDurOr(getenv("RATE_LIMIT_REFILL_INTERVAL", ""), time.Second),
		TTL:            parseDurOr(getenv("RATE_LIMIT_TTL", ""), 10*time.Minute),
		Prefix:         getenv("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	if min := 5 * cfg.RefillInterval; cfg.TTL < min {
		cfg.TTL = min
	}
	return cfg
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if n := atoi(s); n != 0 {
		return n
	}
	return def
}

func parseDurOr(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}
