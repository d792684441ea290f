package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"order-tracker/internal/config"
	"order-tracker/internal/ratelimit"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	return &config.Config{
		Shopify: config.ShopifyConfig{
			Domain:      "villa.myshopify.com",
			AccessToken: "shpat_test",
			APIVersion:  "2024-10",
			Timeout:     time.Second,
		},
		HTTP:      config.HTTPConfig{Addr: addr, StaticDir: t.TempDir()},
		RateLimit: config.RateLimitConfig{Enabled: true, Requests: 5, Window: time.Minute},
		Tracing:   config.TracingConfig{ServiceName: "order-tracker-test"},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewApplication_Limiters(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.RateLimit.Enabled = false

		a := &Application{cfg: cfg, log: discardLogger()}
		limiter, err := a.newLimiter()

		require.NoError(t, err)
		assert.IsType(t, ratelimit.Noop{}, limiter)
	})

	t.Run("memory", func(t *testing.T) {
		a := &Application{cfg: testConfig(t), log: discardLogger()}
		limiter, err := a.newLimiter()

		require.NoError(t, err)
		assert.IsType(t, &ratelimit.MemoryLimiter{}, limiter)
		a.memLimit.Stop()
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := testConfig(t)
		cfg.RateLimit.RedisAddr = mr.Addr()

		a := &Application{cfg: cfg, log: discardLogger()}
		limiter, err := a.newLimiter()

		require.NoError(t, err)
		assert.IsType(t, &ratelimit.RedisLimiter{}, limiter)
		require.NoError(t, a.redis.Close())
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := testConfig(t)
		cfg.RateLimit.RedisAddr = mr.Addr()
		mr.Close()

		_, err := NewApplication(cfg, discardLogger())

		assert.Error(t, err)
	})
}

func TestApplication_RunServesHealthAndStops(t *testing.T) {
	cfg := testConfig(t)
	a, err := NewApplication(cfg, discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + cfg.HTTP.Addr + "/api/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(7 * time.Second):
		t.Fatal("application did not stop")
	}
}
