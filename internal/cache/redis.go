package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const popularityKey = "rank:popularity"

// Cache holds the popularity aggregate (item id -> mean rating) between
// rating writes, so the ranker does not re-aggregate on every request.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// GetPopularity returns the cached aggregate, with found=false on a miss.
func (c *Cache) GetPopularity(ctx context.Context) (map[int64]float64, bool, error) {
	val, err := c.client.Get(ctx, popularityKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get popularity from cache: %w", err)
	}

	var means map[int64]float64
	if err := json.Unmarshal([]byte(val), &means); err != nil {
		return nil, false, fmt.Errorf("unmarshal popularity: %w", err)
	}
	return means, true, nil
}

func (c *Cache) SetPopularity(ctx context.Context, means map[int64]float64) error {
	val, err := json.Marshal(means)
	if err != nil {
		return fmt.Errorf("marshal popularity: %w", err)
	}
	if err := c.client.Set(ctx, popularityKey, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("set popularity in cache: %w", err)
	}
	return nil
}

// InvalidatePopularity drops the aggregate after a rating write so the next
// ranking re-reads fresh means.
func (c *Cache) InvalidatePopularity(ctx context.Context) error {
	if err := c.client.Del(ctx, popularityKey).Err(); err != nil {
		return fmt.Errorf("invalidate popularity: %w", err)
	}
	return nil
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
