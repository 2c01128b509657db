package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSlot stores the slot as a plain Redis string key.
type RedisSlot struct {
	rdb *redis.Client
	key string
}

// NewRedisSlot connects using a redis:// URL and verifies the connection.
func NewRedisSlot(ctx context.Context, url, key string) (*RedisSlot, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisSlotWithOptions(ctx, opts, key)
}

// NewRedisSlotWithOptions connects with explicit client options.
func NewRedisSlotWithOptions(ctx context.Context, opts *redis.Options, key string) (*RedisSlot, error) {
	if key == "" {
		return nil, errors.New("redis key cannot be empty")
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &RedisSlot{rdb: rdb, key: key}, nil
}

// Get returns the key's value.
func (s *RedisSlot) Get(ctx context.Context) ([]byte, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.key, err)
	}
	return data, nil
}

// Put sets the key with no expiry.
func (s *RedisSlot) Put(ctx context.Context, value []byte) error {
	if err := s.rdb.Set(ctx, s.key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.key, err)
	}
	return nil
}

// Close closes the client.
func (s *RedisSlot) Close() error {
	return s.rdb.Close()
}

func (s *RedisSlot) String() string {
	return "redis:" + s.key
}
