// Package ratelimit bounds the number of lookups a client can issue per
// time window. It is an admission gate in front of the HTTP handlers and
// knows nothing about orders.
package ratelimit

import "context"

// Limiter decides whether one more request of key is admitted.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Noop admits everything. Used when rate limiting is disabled.
type Noop struct{}

func (Noop) Allow(context.Context, string) (bool, error) { return true, nil }
