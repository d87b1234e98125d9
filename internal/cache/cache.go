package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a fail-soft Redis wrapper for read caching: a missing server or
// a failed call behaves like a cache miss, never an error. A nil *Client is
// usable and always misses, which keeps tests free of Redis.
//
// Do not put sessions or anything authoritative behind this type.
type Client struct {
	client *redis.Client
}

// New creates a new Redis-backed cache client.
func New(addr, password string, db int) *Client {
	return &Client{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Get returns the cached value, or nil on a miss or any Redis failure.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors alike read as a miss
		return nil, nil
	}
	return res, nil
}

// Set stores value with a TTL, ignoring Redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
	return nil
}

// Delete removes a key, ignoring Redis errors. Callers use it to invalidate
// after writes, so a failed delete only means a stale read until the TTL.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	_ = c.client.Del(ctx, key).Err()
	return nil
}
