package ratelimit

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const loginKeyPrefix = "pos:login:"

// LoginLimiter throttles login attempts per client IP and email using a
// fixed window counter in Redis.
type LoginLimiter struct {
	client      redis.Cmdable
	maxAttempts int
	window      time.Duration
	logger      *zap.Logger
}

// NewLoginLimiter builds a limiter. A nil client or non-positive maxAttempts
// disables throttling.
func NewLoginLimiter(client redis.Cmdable, maxAttempts int, window time.Duration, logger *zap.Logger) *LoginLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window, logger: logger}
}

// Allow records an attempt and reports whether it may proceed. When it may
// not, the returned duration is the time left in the window. Redis failures
// allow the attempt.
func (l *LoginLimiter) Allow(ctx context.Context, ip, email string) (bool, time.Duration) {
	if l.client == nil || l.maxAttempts <= 0 {
		return true, 0
	}

	key := loginKey(ip, email)
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warn("login limiter unavailable", zap.Error(err))
		return true, 0
	}

	remaining := ttl.Val()
	if remaining < 0 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("login limiter expire failed", zap.Error(err))
		}
		remaining = l.window
	}

	if incr.Val() > int64(l.maxAttempts) {
		return false, remaining
	}
	return true, 0
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, ip, email string) {
	if l.client == nil {
		return
	}
	if err := l.client.Del(ctx, loginKey(ip, email)).Err(); err != nil {
		l.logger.Warn("login limiter reset failed", zap.Error(err))
	}
}

func loginKey(ip, email string) string {
	return loginKeyPrefix + ip + ":" + strings.ToLower(strings.TrimSpace(email))
}
