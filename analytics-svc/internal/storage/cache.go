package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/MozaAdirafi/tabletap/analytics-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*domain.Dashboard, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var dashboard domain.Dashboard
	if err := json.Unmarshal(raw, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, dashboard *domain.Dashboard, ttl time.Duration) error {
	raw, err := json.Marshal(dashboard)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, ttl).Err()
}

// Invalidate removes every cached dashboard of one restaurant, whatever the
// date, zone or size it was computed for.
func (c *RedisCache) Invalidate(ctx context.Context, restaurantID string) error {
	pattern := "dashboard:" + restaurantID + ":*"
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
