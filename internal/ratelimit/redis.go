package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter shared by every replica.
type RedisLimiter struct {
	client   *redis.Client
	requests int64
	window   time.Duration
	prefix   string
}

func NewRedisLimiter(client *redis.Client, requests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:   client,
		requests: int64(requests),
		window:   window,
		prefix:   "order-tracker:ratelimit",
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.generateKey(key)

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		ttl = pipe.TTL(ctx, k)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", k, err)
	}
	n := incr.Val()

	// a counter without a TTL opens the window, including one whose EXPIRE was lost
	if ttl.Val() < 0 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("expire %s: %w", k, err)
		}
	}

	return n <= l.requests, nil
}

func (l *RedisLimiter) generateKey(key string) string {
	return fmt.Sprintf("%s:%s", l.prefix, key)
}
