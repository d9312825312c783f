// Package redis keeps persisted session records in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/lborres/kindercrew/core"
)

const DefaultPrefix = "kindercrew:"

var _ core.RecordStorage = (*Records)(nil)

type Records struct {
	client goredis.Cmdable
	prefix string
	// zero keeps records until they are deleted
	ttl time.Duration
}

// New wraps client. An empty prefix means DefaultPrefix.
func New(client goredis.Cmdable, prefix string, ttl time.Duration) *Records {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Records{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *Records) key(k string) string {
	return r.prefix + k
}

func (r *Records) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, core.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return value, nil
}

func (r *Records) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set record: %w", err)
	}
	return nil
}

// Delete removes key. A missing key is not an error.
func (r *Records) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// Ping checks the connection, for use at startup.
func (r *Records) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
