package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SlotCache is a short-TTL Redis cache for raw slot-availability responses,
// keyed by the exact (eventType, range, timezone) request. It stands in for
// the 60-second edge cache the hosted deployment applied to slot fetches.
// A nil cache or nil client is a pass-through.
type SlotCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewSlotCache creates a slot cache. ttl <= 0 selects the 60-second default.
func NewSlotCache(client *redis.Client, ttl time.Duration) *SlotCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &SlotCache{redis: client, ttl: ttl}
}

func (c *SlotCache) key(eventTypeID, startDate, endDate, timezone string) string {
	return fmt.Sprintf("slots:%s:%s:%s:%s", eventTypeID, startDate, endDate, timezone)
}

// Get returns the cached response body for a slot request, if present.
func (c *SlotCache) Get(ctx context.Context, eventTypeID, startDate, endDate, timezone string) ([]byte, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, c.key(eventTypeID, startDate, endDate, timezone)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a response body for a slot request. Failures are ignored; the
// cache is best-effort.
func (c *SlotCache) Set(ctx context.Context, eventTypeID, startDate, endDate, timezone string, body []byte) {
	if c == nil || c.redis == nil {
		return
	}
	_ = c.redis.Set(ctx, c.key(eventTypeID, startDate, endDate, timezone), body, c.ttl).Err()
}
