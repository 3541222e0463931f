package redis

import (
	"context"
	"time"

	"github.com/oggyb/buka-sms/internal/cache"
	"github.com/redis/go-redis/v9"
)

// Client is a thin Redis-backed implementation of the cache interface.
type Client struct {
	rdb *redis.Client
}

// New creates a new Redis client with the given address, password and DB number.
func New(addr, password string, dbNumber int) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       dbNumber,
	})
	return &Client{rdb: rdb}
}

// Ping checks if Redis is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// SetNX stores a value with the given TTL unless the key already exists.
func (c *Client) SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, key, value, ttl).Result()
}

// Del deletes a key from Redis.
func (c *Client) Del(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

var _ cache.Cache = (*Client)(nil)
