package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "meditrack:"

// RedisKV stores values as plain Redis strings under prefix+key.
type RedisKV struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisKV connects to redisURL and verifies the connection.
func NewRedisKV(ctx context.Context, redisURL, prefix string) (*RedisKV, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse redis url: %v", ErrBackend, err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%w: redis ping: %v", ErrBackend, err)
	}
	return NewRedisKVFromClient(rdb, prefix), nil
}

// NewRedisKVFromClient wraps an existing client.
func NewRedisKVFromClient(rdb *redis.Client, prefix string) *RedisKV {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisKV{rdb: rdb, prefix: prefix}
}

// Get reads prefix+key.
func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: redis get %s: %v", ErrBackend, key, err)
	}
	return raw, true, nil
}

// Set writes prefix+key with no expiry.
func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: redis set %s: %v", ErrBackend, key, err)
	}
	return nil
}

// Close releases the client.
func (r *RedisKV) Close() error {
	return r.rdb.Close()
}
