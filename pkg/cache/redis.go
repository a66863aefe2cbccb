package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one mapping in a Redis hash. Writes go straight to Redis,
// so Flush has nothing to do.
type RedisStore struct {
	client *redis.Client
	key    string
	owned  bool
}

// NewRedisStore stores entries in the hash at key using client. The caller
// keeps ownership of client.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// OpenRedisStore connects to the Redis server at url (redis://host:port/db)
// and verifies the connection. The returned store owns its client.
func OpenRedisStore(ctx context.Context, url, key string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &RedisStore{client: client, key: key, owned: true}, nil
}

// Get reads a field of the hash.
func (s *RedisStore) Get(ctx context.Context, key string, v any) (bool, error) {
	data, err := s.client.HGet(ctx, s.key, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode cache entry %q: %w", key, err)
	}
	return true, nil
}

// Set writes a field of the hash.
func (s *RedisStore) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, s.key, key, data).Err()
}

// Range calls fn for every field of the hash in key order.
func (s *RedisStore) Range(ctx context.Context, fn func(key string, decode func(v any) error) error) error {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		raw := fields[k]
		if err := fn(k, func(v any) error { return json.Unmarshal([]byte(raw), v) }); err != nil {
			return err
		}
	}
	return nil
}

// Flush does nothing; every Set is already durable in Redis.
func (s *RedisStore) Flush(context.Context) error { return nil }

// Len returns the number of fields in the hash.
func (s *RedisStore) Len(ctx context.Context) (int64, error) {
	return s.client.HLen(ctx, s.key).Result()
}

// Clear removes the hash.
func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

// Close closes the client if the store opened it.
func (s *RedisStore) Close() error {
	if s.owned {
		return s.client.Close()
	}
	return nil
}

var (
	_ Store  = (*RedisStore)(nil)
	_ Ranger = (*RedisStore)(nil)
)
