package repository

import (
	"context"
	"fmt"
)

// Supported KV backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Backend selects and configures the KV a BlobStore is opened over.
type Backend struct {
	Kind        string
	DataDir     string
	RedisURL    string
	RedisPrefix string
}

// Open builds a BlobStore for b. The returned close func releases the
// backend connection and is never nil.
func Open(ctx context.Context, b Backend) (*BlobStore, func() error, error) {
	noop := func() error { return nil }

	switch b.Kind {
	case BackendMemory:
		return NewBlobStore(NewMemoryKV()), noop, nil
	case BackendFile, "":
		kv, err := NewFileKV(b.DataDir)
		if err != nil {
			return nil, noop, err
		}
		return NewBlobStore(kv), noop, nil
	case BackendRedis:
		kv, err := NewRedisKV(ctx, b.RedisURL, b.RedisPrefix)
		if err != nil {
			return nil, noop, err
		}
		return NewBlobStore(kv), kv.Close, nil
	}
	return nil, noop, fmt.Errorf("%w: unknown backend %q", ErrBackend, b.Kind)
}
