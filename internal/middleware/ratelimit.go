package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/photo-feed/internal/apperr"
	"github.com/iliyamo/photo-feed/internal/config"
)

// RateLimit enforces a fixed window of cfg.Max requests per client IP
// per cfg.Window, independent of endpoint. The counter lives in Redis so
// the limit holds across replicas. When the limiter is disabled, Redis
// is unreachable or a command fails, requests pass through untouched.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			now := time.Now()
			key := WindowKey(cfg.Prefix, ip, now, cfg.Window)
			ctx := c.Request().Context()

			// INCR and EXPIRE travel in one MULTI/EXEC so the counter
			// can never persist without a TTL. The key embeds the window
			// start, so refreshing the TTL on every hit is harmless.
			pipe := rdb.TxPipeline()
			incr := pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, cfg.Window)
			if _, err := pipe.Exec(ctx); err != nil {
				return next(c) // degrade open
			}
			n := incr.Val()

			remaining := int64(cfg.Max) - n
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Max))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if n > int64(cfg.Max) {
				retry := int(RetryAfter(now, cfg.Window).Seconds())
				c.Response().Header().Set("Retry-After", strconv.Itoa(retry))
				return apperr.TooManyRequests("Too many requests, please try again later")
			}
			return next(c)
		}
	}
}

// WindowKey builds the Redis key for the fixed window containing now.
// Every request inside one window shares a key; the next window rolls
// over to a fresh counter.
func WindowKey(prefix, ip string, now time.Time, window time.Duration) string {
	sec := int64(window / time.Second)
	start := now.Unix() - now.Unix()%sec
	return fmt.Sprintf("%s:ip:%s:%d", prefix, ip, start)
}

// RetryAfter returns how long until the window containing now ends.
func RetryAfter(now time.Time, window time.Duration) time.Duration {
	sec := int64(window / time.Second)
	elapsed := now.Unix() % sec
	return time.Duration(sec-elapsed) * time.Second
}
