package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestThrottle(t *testing.T, limit int) (*LoginThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewLoginThrottle(client, limit, 15*time.Minute), mr
}

func TestThrottleLocksAfterLimit(t *testing.T) {
	throttle, _ := newTestThrottle(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if !throttle.Allow(ctx, "a@example.com") {
			t.Fatalf("attempt %d unexpectedly blocked", i)
		}
		if err := throttle.Fail(ctx, "a@example.com"); err != nil {
			t.Fatalf("Fail error: %v", err)
		}
	}

	if throttle.Allow(ctx, "a@example.com") {
		t.Fatalf("expected lockout after limit reached")
	}
	if !throttle.Allow(ctx, "b@example.com") {
		t.Fatalf("unrelated account should not be throttled")
	}
}

func TestThrottleResetClearsLock(t *testing.T) {
	throttle, _ := newTestThrottle(t, 1)
	ctx := context.Background()

	if err := throttle.Fail(ctx, "a@example.com"); err != nil {
		t.Fatalf("Fail error: %v", err)
	}
	if throttle.Allow(ctx, "a@example.com") {
		t.Fatalf("expected lockout")
	}
	if err := throttle.Reset(ctx, "a@example.com"); err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	if !throttle.Allow(ctx, "a@example.com") {
		t.Fatalf("expected attempts allowed after reset")
	}
}

func TestThrottleWindowExpires(t *testing.T) {
	throttle, mr := newTestThrottle(t, 1)
	ctx := context.Background()

	if err := throttle.Fail(ctx, "a@example.com"); err != nil {
		t.Fatalf("Fail error: %v", err)
	}
	if throttle.Allow(ctx, "a@example.com") {
		t.Fatalf("expected lockout")
	}

	mr.FastForward(16 * time.Minute)
	if !throttle.Allow(ctx, "a@example.com") {
		t.Fatalf("expected lock to expire with window")
	}
}

func TestThrottleNilFailsOpen(t *testing.T) {
	var throttle *LoginThrottle
	if !throttle.Allow(context.Background(), "a@example.com") {
		t.Fatalf("nil throttle must allow")
	}
	if err := throttle.Fail(context.Background(), "a@example.com"); err != nil {
		t.Fatalf("nil throttle Fail error: %v", err)
	}
}
