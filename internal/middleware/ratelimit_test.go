package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/photo-feed/internal/apperr"
	"github.com/iliyamo/photo-feed/internal/config"
)

func TestWindowKey_StableWithinWindow(t *testing.T) {
	t.Parallel()

	window := 15 * time.Minute
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	k1 := WindowKey("rl", "10.0.0.1", base, window)
	k2 := WindowKey("rl", "10.0.0.1", base.Add(14*time.Minute+59*time.Second), window)
	if k1 != k2 {
		t.Fatalf("keys inside one window must match: %q vs %q", k1, k2)
	}

	k3 := WindowKey("rl", "10.0.0.1", base.Add(15*time.Minute), window)
	if k1 == k3 {
		t.Fatalf("key must roll over at the window boundary: %q", k3)
	}
}

func TestWindowKey_SeparatesClients(t *testing.T) {
	t.Parallel()

	now := time.Now()
	a := WindowKey("rl", "10.0.0.1", now, time.Minute)
	b := WindowKey("rl", "10.0.0.2", now, time.Minute)
	if a == b {
		t.Fatal("different IPs must not share a counter")
	}
}

func TestRateLimit_ThrottlesAndAlwaysSetsTTL(t *testing.T) {
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})

	cfg := config.RateLimitConfig{
		Enabled: true,
		Max:     2,
		Window:  15 * time.Minute,
		Prefix:  "rl",
	}
	h := RateLimit(cfg, rdb)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	e := echo.New()
	call := func() error {
		req := httptest.NewRequest(http.MethodGet, "/post", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		return h(e.NewContext(req, httptest.NewRecorder()))
	}

	for i := 0; i < cfg.Max; i++ {
		if err := call(); err != nil {
			t.Fatalf("request %d within the limit failed: %v", i+1, err)
		}
	}

	err := call()
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindTooManyRequests {
		t.Fatalf("expected a too-many-requests error over the limit, got %v", err)
	}

	// The counter may never exist without an expiry, even after the
	// first increment.
	key := WindowKey(cfg.Prefix, "10.0.0.9", time.Now(), cfg.Window)
	if ttl := srv.TTL(key); ttl <= 0 {
		t.Fatalf("counter key has no TTL (got %v)", ttl)
	}
}

func TestRetryAfter(t *testing.T) {
	t.Parallel()

	window := 15 * time.Minute
	at := time.Date(2026, 1, 10, 12, 10, 0, 0, time.UTC) // 10 min into the window
	got := RetryAfter(at, window)
	if got != 5*time.Minute {
		t.Fatalf("expected 5m until window end, got %v", got)
	}
}
