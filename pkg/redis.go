package pkg

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisTimeout = 5 * time.Second

// RedisStore stores JSON-serialized values in Redis. Every call is bounded
// by Timeout on top of the caller's context.
type RedisStore struct {
	Client  *redis.Client
	Timeout time.Duration
}

// NewRedisStore creates a store with the default 5s call timeout
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client, Timeout: defaultRedisTimeout}
}

// Set stores a value in Redis with a TTL. The value is JSON-serialized.
func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(ctx, key, data, ttl).Err()
}

// Get retrieves a value from Redis and JSON-deserializes it into dest.
// Returns redis.Nil if the key does not exist.
func (s *RedisStore) Get(ctx context.Context, key string, dest any) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	data, err := s.Client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// DeletePrefix removes every key starting with prefix
func (s *RedisStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var keys []string
	iter := s.Client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	n, err := s.Client.Del(ctx, keys...).Result()
	return int(n), err
}

// IsRedisNil returns true if the error is a redis key-not-found error.
func IsRedisNil(err error) bool {
	return errors.Is(err, redis.Nil)
}
