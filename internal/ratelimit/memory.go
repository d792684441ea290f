package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"order-tracker/internal/metric"

	"golang.org/x/time/rate"
)

type limiterItem struct {
	limiter   *rate.Limiter
	expiresAt int64
}

// MemoryLimiter keeps one token bucket per key in process memory. A bucket
// refills requests tokens per window; buckets idle for a whole window are
// dropped by GC.
type MemoryLimiter struct {
	items           map[string]limiterItem
	limit           rate.Limit
	burst           int
	idleTTL         time.Duration
	cleanupInterval time.Duration
	sync.Mutex
	ticker *time.Ticker
	log    *slog.Logger
}

func NewMemoryLimiter(requests int, window time.Duration, log *slog.Logger) *MemoryLimiter {
	if requests < 1 {
		requests = 1
	}
	return &MemoryLimiter{
		items:           make(map[string]limiterItem),
		limit:           rate.Every(window / time.Duration(requests)),
		burst:           requests,
		idleTTL:         window,
		cleanupInterval: window,
		ticker:          time.NewTicker(window),
		log:             log,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.Lock()
	defer l.Unlock()

	item, exists := l.items[key]
	if !exists {
		item.limiter = rate.NewLimiter(l.limit, l.burst)
		metric.RateLimitClients.Inc()
	}
	item.expiresAt = time.Now().Add(l.idleTTL).UnixNano()
	l.items[key] = item

	return item.limiter.Allow(), nil
}

// Len reports the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	l.Lock()
	defer l.Unlock()
	return len(l.items)
}

// GC drops idle buckets on every tick until ctx is done.
func (l *MemoryLimiter) GC(ctx context.Context) error {
	for {
		select {
		case <-l.ticker.C:
			if deleted := l.evictExpired(time.Now()); deleted > 0 {
				l.log.Debug("rate limiter gc", slog.Int("deleted", deleted))
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (l *MemoryLimiter) evictExpired(now time.Time) int {
	l.Lock()
	defer l.Unlock()

	deleted := 0
	for key, item := range l.items {
		if now.UnixNano() > item.expiresAt {
			delete(l.items, key)
			metric.RateLimitClients.Dec()
			deleted++
		}
	}
	return deleted
}

func (l *MemoryLimiter) Stop() {
	l.ticker.Stop()
}
