package ratelimit

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMemoryLimiter_Allow(t *testing.T) {
	l := NewMemoryLimiter(3, time.Minute, discardLogger())
	defer l.Stop()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i+1)
	}

	ok, _ := l.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "10.0.0.2")
	assert.True(t, ok, "keys are limited independently")
	assert.Equal(t, 2, l.Len())
}

func TestMemoryLimiter_EvictExpired(t *testing.T) {
	l := NewMemoryLimiter(1, time.Minute, discardLogger())
	defer l.Stop()

	_, _ = l.Allow(context.Background(), "a")
	_, _ = l.Allow(context.Background(), "b")

	assert.Equal(t, 0, l.evictExpired(time.Now()))
	assert.Equal(t, 2, l.evictExpired(time.Now().Add(2*time.Minute)))
	assert.Equal(t, 0, l.Len())

	ok, _ := l.Allow(context.Background(), "a")
	assert.True(t, ok, "an evicted key starts with a full bucket")
}

func TestMemoryLimiter_GCStopsWithContext(t *testing.T) {
	l := NewMemoryLimiter(1, 10*time.Millisecond, discardLogger())
	defer l.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, l.GC(ctx), context.DeadlineExceeded)
}

func TestRedisLimiter_Allow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	l := NewRedisLimiter(client, 2, time.Minute)
	ctx := context.Background()

	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	ttl := mr.TTL("order-tracker:ratelimit:10.0.0.1")
	assert.Equal(t, time.Minute, ttl)

	mr.FastForward(time.Minute + time.Second)

	ok, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok, "a new window starts after expiry")
}

func TestRedisLimiter_RestoresMissingTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	// counter left behind by an INCR whose EXPIRE never ran
	require.NoError(t, mr.Set("order-tracker:ratelimit:10.0.0.2", "5"))

	l := NewRedisLimiter(client, 2, time.Minute)
	ctx := context.Background()

	ok, err := l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, mr.TTL("order-tracker:ratelimit:10.0.0.2"))

	mr.FastForward(time.Minute + time.Second)

	ok, err = l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok, "the stale counter expires instead of blocking forever")
}

func TestRedisLimiter_StoreDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	l := NewRedisLimiter(client, 2, time.Minute)

	_, err := l.Allow(context.Background(), "k")
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	ok, err := Noop{}.Allow(context.Background(), "any")
	assert.NoError(t, err)
	assert.True(t, ok)
}
