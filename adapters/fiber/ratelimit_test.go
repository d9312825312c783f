package fiber

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
)

func TestRateLimiter_PerClientBuckets(t *testing.T) {
	// Arrange
	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.001, Burst: 1})
	defer rl.Stop()

	// Act & Assert
	if !rl.Allow("10.0.0.1") {
		t.Error("first request from a client should pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("second request from the same client should be limited")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("another client has its own bucket")
	}
	if got := rl.ClientCount(); got != 2 {
		t.Errorf("ClientCount() = %d, want 2", got)
	}
}

func TestRateLimiter_CleanupDropsIdleClients(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 1, IdleTTL: time.Minute})
	defer rl.Stop()
	rl.Allow("10.0.0.1")

	rl.cleanup(time.Now())
	if rl.ClientCount() != 1 {
		t.Fatal("fresh client was dropped")
	}
	rl.cleanup(time.Now().Add(2 * time.Minute))
	if rl.ClientCount() != 0 {
		t.Error("idle client was kept")
	}
}

func TestPerMinute(t *testing.T) {
	cfg := PerMinute(30)

	if cfg.Burst != 30 {
		t.Errorf("Burst = %d, want 30", cfg.Burst)
	}
	if float64(cfg.Rate) != 0.5 {
		t.Errorf("Rate = %v, want 0.5/s", cfg.Rate)
	}
	rl := NewRateLimiter(cfg)
	defer rl.Stop()
	if got := rl.retryAfterSeconds(); got != 2 {
		t.Errorf("retryAfterSeconds() = %d, want 2", got)
	}
}

// Requirement: rejected requests are logged through the injected logger.
func TestRateLimiter_WrapLogsThroughInjectedLogger(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.001, Burst: 1, Logger: logger})
	defer rl.Stop()

	app := fiber.New()
	app.Get("/login", rl.Wrap(func(c fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	}))

	// Act
	first, err := app.Test(httptest.NewRequest(http.MethodGet, "/login", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	second, err := app.Test(httptest.NewRequest(http.MethodGet, "/login", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	// Assert
	if first.StatusCode != http.StatusOK {
		t.Errorf("first status = %d, want 200", first.StatusCode)
	}
	if second.StatusCode != http.StatusTooManyRequests {
		t.Errorf("second status = %d, want 429", second.StatusCode)
	}
	out := buf.String()
	if !strings.Contains(out, "rate limit exceeded") || !strings.Contains(out, `"component":"ratelimit"`) {
		t.Errorf("log output = %q, want a ratelimit warning", out)
	}
}
