package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/teamhub/announcements-api/internal/core/domain"
)

const (
	listCacheKey = "announcements:list"
	listCacheTTL = 30 * time.Second
)

// AnnouncementCache caches the public announcements listing in Redis.
// Entries expire after a short TTL and are invalidated eagerly on any
// mutation.
type AnnouncementCache struct {
	client *redis.Client
}

// NewAnnouncementCache creates an AnnouncementCache wrapping the given
// Redis client.
func NewAnnouncementCache(client *redis.Client) *AnnouncementCache {
	return &AnnouncementCache{client: client}
}

// Get returns the cached listing, or (nil, nil) on a miss.
func (c *AnnouncementCache) Get(ctx context.Context) ([]domain.Announcement, error) {
	raw, err := c.client.Get(ctx, listCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var items []domain.Announcement
	if err := json.Unmarshal(raw, &items); err != nil {
		// A corrupt entry is treated as a miss; the next Put overwrites it.
		return nil, nil
	}
	return items, nil
}

func (c *AnnouncementCache) Put(ctx context.Context, items []domain.Announcement) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	return c.client.Set(ctx, listCacheKey, raw, listCacheTTL).Err()
}

func (c *AnnouncementCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, listCacheKey).Err()
}
