package ratelimit

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// RedisLimiter shares the fixed window across every instance pointed at the same Redis.
type RedisLimiter struct {
	cfg Config
	rdb *redis.Client
}

func NewRedisLimiter(rdb *redis.Client, cfg Config) *RedisLimiter {
	return &RedisLimiter{cfg: cfg, rdb: rdb}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.cfg.Limit <= 0 {
		return true, nil
	}

	start := windowStart(timeNow(), l.cfg.Window)
	bucket := fmt.Sprintf("%s%s:%d", keyPrefix, key, start.Unix())

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, bucket)
	pipe.Expire(ctx, bucket, l.cfg.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}

	return incr.Val() <= int64(l.cfg.Limit), nil
}
