package language

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "quote-agent:normalize:"

// RedisCache keeps normalizations keyed by a hash of the raw message.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects using a redis:// or rediss:// URL.
func NewRedisCache(redisURL string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("language: parse redis url: %w", err)
	}
	return NewRedisCacheFromClient(redis.NewClient(opt), ttl), nil
}

func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Get(ctx context.Context, raw string) (Normalized, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(raw)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Normalized{}, false, nil
	}
	if err != nil {
		return Normalized{}, false, err
	}

	var n Normalized
	if err := json.Unmarshal(data, &n); err != nil || n.EnglishQuery == "" {
		return Normalized{}, false, err
	}
	return n, true, nil
}

func (c *RedisCache) Set(ctx context.Context, raw string, n Normalized) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(raw), data, c.ttl).Err()
}

func cacheKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
