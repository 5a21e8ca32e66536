package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// SlidingWindowConfig parameterizes one limited action.
type SlidingWindowConfig struct {
	// Prefix distinguishes limiters sharing a client, e.g. "onehealth:ratelimit:login".
	Prefix string
	// Window is the rolling period attempts are counted over.
	Window time.Duration
	// MaxAttempts is the number of attempts allowed within the window.
	MaxAttempts int
}

// SlidingWindowLimiter counts attempts per key in a rolling window using a
// Redis sorted set whose members are attempt timestamps.
type SlidingWindowLimiter struct {
	client *goredis.Client
	cfg    SlidingWindowConfig
}

// NewSlidingWindowLimiter wires a Redis-backed sliding window limiter.
func NewSlidingWindowLimiter(client *goredis.Client, cfg SlidingWindowConfig) *SlidingWindowLimiter {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	return &SlidingWindowLimiter{client: client, cfg: cfg}
}

func (l *SlidingWindowLimiter) key(subject string) string {
	return fmt.Sprintf("%s:%s", l.cfg.Prefix, subject)
}

// Allow records an attempt for the subject and reports whether it stays
// within the limit. The attempt is counted even when denied so retrying does
// not shorten the wait.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, subject string) (bool, error) {
	now := time.Now()
	windowStart := now.Add(-l.cfg.Window)
	key := l.key(subject)

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	pipe.ZAdd(ctx, key, goredis.Z{
		Score:  float64(now.UnixNano()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, l.cfg.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit check: %w", err)
	}

	return count.Val() <= int64(l.cfg.MaxAttempts), nil
}

// Reset clears the attempt history for the subject, used after a successful
// login so earlier failures stop counting.
func (l *SlidingWindowLimiter) Reset(ctx context.Context, subject string) error {
	if err := l.client.Del(ctx, l.key(subject)).Err(); err != nil {
		return fmt.Errorf("rate limit reset: %w", err)
	}
	return nil
}
