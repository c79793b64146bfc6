package cache

import (
	"context"
	"fmt"
	"time"

	"trade-journal/events"
)

// StatsCache holds short-lived account summary snapshots keyed by tenant and
// account. It registers on the event dispatcher so any trade or account
// mutation drops the affected snapshot immediately; the TTL only covers
// writes that bypass this process.
type StatsCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewStatsCache creates a stats cache with the given snapshot TTL
func NewStatsCache(redis *RedisClient, ttl time.Duration) *StatsCache {
	return &StatsCache{redis: redis, ttl: ttl}
}

func statsKey(userID, accountID string) string {
	return fmt.Sprintf("account_stats:%s:%s", userID, accountID)
}

// Get loads a cached snapshot into dest; returns false on a miss or when
// redis is unavailable.
func (c *StatsCache) Get(ctx context.Context, userID, accountID string, dest interface{}) bool {
	if c == nil || c.redis == nil {
		return false
	}
	return c.redis.Get(ctx, statsKey(userID, accountID), dest) == nil
}

// Set stores a snapshot; failures are ignored, the cache is best-effort
func (c *StatsCache) Set(ctx context.Context, userID, accountID string, stats interface{}) {
	if c == nil || c.redis == nil {
		return
	}
	_ = c.redis.Set(ctx, statsKey(userID, accountID), stats, c.ttl)
}

// Invalidate drops the snapshot for one account
func (c *StatsCache) Invalidate(ctx context.Context, userID, accountID string) {
	if c == nil || c.redis == nil {
		return
	}
	_ = c.redis.Delete(ctx, statsKey(userID, accountID))
}

// Name implements events.Handler
func (c *StatsCache) Name() string {
	return "stats-cache"
}

// Handle implements events.Handler: any event that names an account makes its
// snapshot stale.
func (c *StatsCache) Handle(event events.Event) {
	if event.AccountID == "" {
		return
	}
	c.Invalidate(context.Background(), event.UserID, event.AccountID)
}
