// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// BlobCache stores opaque byte values under string keys.
type BlobCache struct {
	client redis.Cmdable
}

// NewBlobCache wraps a connected client.
func NewBlobCache(client redis.Cmdable) *BlobCache {
	return &BlobCache{client: client}
}

// Get returns the value for key. A missing key is not an error.
func (c *BlobCache) Get(context stdctx.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(context, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis: get %s: %w", key, err)
	}
	return data, true, nil
}

// Set stores data for ttl. A zero ttl keeps the key until evicted.
func (c *BlobCache) Set(context stdctx.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(context, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}
