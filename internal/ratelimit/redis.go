package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DialRedis opens a client and checks connectivity.
func DialRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

// Redis is a fixed-window counter: the first hit in a window sets the expiry.
type Redis struct {
	rdb    redis.Cmdable
	prefix string
	limit  int64
	window time.Duration
}

func NewRedis(rdb redis.Cmdable, prefix string, limit int, window time.Duration) *Redis {
	return &Redis{
		rdb:    rdb,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
	}
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := r.prefix + key

	n, err := r.rdb.Incr(ctx, k).Result()
	if err != nil {
		return true, 0, err
	}

	if n == 1 {
		if err := r.rdb.Expire(ctx, k, r.window).Err(); err != nil {
			return true, 0, err
		}
	}

	if n <= r.limit {
		return true, 0, nil
	}

	ttl, err := r.rdb.PTTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		// a key without expiry would block forever; give it one
		_ = r.rdb.Expire(ctx, k, r.window).Err()
		ttl = r.window
	}
	return false, ttl, nil
}
