// Package ratelimit counts requests per key. The memory limiter serves a single
// process; the redis limiter shares counts between replicas.
package ratelimit

import (
	"context"
	"time"
)

type Limiter interface {
	// Allow records one hit for key. When the hit is rejected, retryAfter
	// says how long until the key may try again.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}
