package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryLimiter is a fixed window counter kept in process memory.
type MemoryLimiter struct {
	cfg   Config
	cache *cache.Cache
	mu    sync.Mutex
	now   func() time.Time
}

func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	return &MemoryLimiter{
		cfg:   cfg,
		cache: cache.New(cfg.Window, 2*cfg.Window),
		now:   time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.cfg.Limit <= 0 {
		return true, nil
	}

	start := windowStart(l.now(), l.cfg.Window)
	bucket := fmt.Sprintf("%s:%d", key, start.Unix())

	l.mu.Lock()
	defer l.mu.Unlock()

	count := 0
	if x, found := l.cache.Get(bucket); found {
		count = x.(int)
	}
	if count >= l.cfg.Limit {
		return false, nil
	}
	l.cache.Set(bucket, count+1, l.cfg.Window)
	return true, nil
}
