package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultCartTTL = 24 * time.Hour

// RedisCartStorage persists carts as JSON strings. Each write refreshes the
// TTL so abandoned carts expire on their own.
type RedisCartStorage struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCartStorage(client *redis.Client, ttl time.Duration) *RedisCartStorage {
	return &RedisCartStorage{Client: client, TTL: ttl}
}

func (s *RedisCartStorage) CartKey(sessionID string) string {
	return "cart:" + sessionID
}

func (s *RedisCartStorage) Get(ctx context.Context, sessionID string) (string, bool, error) {
	value, err := s.Client.Get(ctx, s.CartKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *RedisCartStorage) Set(ctx context.Context, sessionID, value string) error {
	return s.Client.Set(ctx, s.CartKey(sessionID), value, s.TTL).Err()
}

func (s *RedisCartStorage) Delete(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, s.CartKey(sessionID)).Err()
}
