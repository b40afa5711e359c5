package config

import "time"

// RateLimitConfig configures the fixed-window request limiter. The
// window applies per client IP across all endpoints. When Enabled is
// false or no Redis client is available the limiter is a no-op.
type RateLimitConfig struct {
	Enabled bool
	Max     int           // allowed requests per window
	Window  time.Duration // window length
	Prefix  string        // Redis key namespace
}

// LoadRateLimitConfig reads limiter settings from the environment,
// defaulting to 300 requests per IP per 15 minutes.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: envBool("RATE_LIMIT_ENABLED", true),
		Max:     envInt("RATE_LIMIT_MAX", 300),
		Window:  envDur("RATE_LIMIT_WINDOW", 15*time.Minute),
		Prefix:  envStr("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Max < 1 {
		cfg.Max = 1
	}
	if cfg.Window < time.Second {
		cfg.Window = time.Second
	}
	return cfg
}
