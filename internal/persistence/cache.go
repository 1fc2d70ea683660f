package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheKey returns the Redis key holding the cached list for a collection.
func CacheKey(collection string) string {
	return collection + "_cache"
}

// ListCache stores JSON-encoded collection listings in Redis.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache builds a cache over r. A disabled Redis yields a cache that always misses.
func NewListCache(r *Redis, ttl time.Duration) *ListCache {
	var client *redis.Client
	if r != nil {
		client = r.Client
	}
	return &ListCache{client: client, ttl: ttl}
}

// Get decodes the cached listing into dst. It reports false on a miss.
func (c *ListCache) Get(ctx context.Context, collection string, dst any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, CacheKey(collection)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value under the collection's key with the configured TTL.
func (c *ListCache) Set(ctx context.Context, collection string, value any) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, CacheKey(collection), raw, c.ttl).Err()
}

// Invalidate removes cached listings for the given collections.
func (c *ListCache) Invalidate(ctx context.Context, collections ...string) error {
	if c == nil || c.client == nil || len(collections) == 0 {
		return nil
	}
	keys := make([]string, 0, len(collections))
	for _, name := range collections {
		keys = append(keys, CacheKey(name))
	}
	return c.client.Del(ctx, keys...).Err()
}
