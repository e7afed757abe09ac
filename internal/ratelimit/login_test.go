package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestLoginLimiter_Disabled(t *testing.T) {
	ctx := context.Background()

	limiter := NewLoginLimiter(nil, 3, time.Minute, nil)
	for i := 0; i < 10; i++ {
		if ok, _ := limiter.Allow(ctx, "10.0.0.1", "a@example.com"); !ok {
			t.Fatalf("attempt %d: nil client should never throttle", i+1)
		}
	}
	limiter.Reset(ctx, "10.0.0.1", "a@example.com")
}

func TestLoginLimiter_UnreachableRedisAllows(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	limiter := NewLoginLimiter(client, 1, time.Minute, nil)
	for i := 0; i < 3; i++ {
		if ok, _ := limiter.Allow(context.Background(), "10.0.0.1", "a@example.com"); !ok {
			t.Fatalf("attempt %d: unreachable redis should allow", i+1)
		}
	}
}

func TestLoginKey(t *testing.T) {
	if got := loginKey("10.0.0.1", "  Owner@Example.com "); got != "pos:login:10.0.0.1:owner@example.com" {
		t.Errorf("unexpected key %q", got)
	}
}

func TestLoginLimiter_Redis(t *testing.T) {
	// Skip test if Redis is not available
	client := redis.NewClient(&redis.Options{
		Addr: "127.0.0.1:6379",
		DB:   3,
	})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	defer client.FlushDB(ctx)

	limiter := NewLoginLimiter(client, 3, time.Minute, nil)
	ip, email := "192.0.2.10", "cashier@example.com"

	for i := 1; i <= 3; i++ {
		if ok, _ := limiter.Allow(ctx, ip, email); !ok {
			t.Fatalf("attempt %d should be allowed", i)
		}
	}

	ok, retry := limiter.Allow(ctx, ip, email)
	if ok {
		t.Fatal("fourth attempt should be throttled")
	}
	if retry <= 0 || retry > time.Minute {
		t.Errorf("retry-after: expected (0, 1m], got %v", retry)
	}

	if ok, _ := limiter.Allow(ctx, "192.0.2.11", email); !ok {
		t.Error("another IP should have its own window")
	}

	limiter.Reset(ctx, ip, email)
	if ok, _ := limiter.Allow(ctx, ip, email); !ok {
		t.Error("attempt after reset should be allowed")
	}
}
