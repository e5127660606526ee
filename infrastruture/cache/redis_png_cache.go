package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	lockSuffix     = ":render_lock"
	lockExpiry     = 30 * time.Second
	lockRetries    = 60
	lockRetryDelay = 250 * time.Millisecond
)

var ErrNilClient = errors.New("redis client is nil")

// RedisPNGCache stores rendered images in Redis with a TTL and serialises renders
// of the same key across processes with a redsync mutex.
type RedisPNGCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisPNGCache initializes a RedisPNGCache with the provided Redis client and TTL.
// A non-positive TTL keeps entries until Redis evicts them.
func NewRedisPNGCache(client *redis.Client, ttlSeconds int) (i.PNGCache, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	cache := &RedisPNGCache{
		client: client,
		ttl:    time.Duration(max(ttlSeconds, 0)) * time.Second,
	}
	pool := goredis.NewPool(client)
	cache.locker = redsync.New(pool)
	return cache, nil
}

// Get returns the image stored under key. A missing key is a miss, not an error.
func (c *RedisPNGCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, true, nil
}

// Set stores data under key with the cache's TTL.
func (c *RedisPNGCache) Set(ctx context.Context, key string, data []byte) error {
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Lock blocks until the render lock for key is held or ctx ends.
func (c *RedisPNGCache) Lock(ctx context.Context, key string) (func(), error) {
	mutex := c.locker.NewMutex(lockName(key),
		redsync.WithExpiry(lockExpiry),
		redsync.WithTries(lockRetries),
		redsync.WithRetryDelay(lockRetryDelay),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("locking %s: %w", key, err)
	}

	return func() {
		_, _ = mutex.Unlock()
	}, nil
}

func lockName(key string) string {
	return key + lockSuffix
}
