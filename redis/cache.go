// Package redis provides the external key-value decode cache backed by
// a Redis server.
package redis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/feedgen-project/feedgen"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces this system's keys in a shared store so
// Clear only removes its own entries.
const DefaultKeyPrefix = "feedgen:gnews:"

// DefaultTTL is the default entry lifetime.
const DefaultTTL = 24 * time.Hour

var _ feedgen.DecodeCache = (*Cache)(nil)

// Cache is a Redis-backed decode cache. Construction fails when the
// server is unreachable; runtime operation errors are logged and
// degrade to miss or no-op, matching the in-process backend's policy.
type Cache struct {
	client     *redis.Client
	keyPrefix  string
	defaultTTL time.Duration
	logger     *slog.Logger

	hits   int64
	misses int64
	sets   int64
}

// New connects to the Redis server at connectionURL and verifies the
// connection. Returns EINVALID for an unparseable URL and EUNAVAILABLE
// when the server does not respond to a ping.
func New(ctx context.Context, connectionURL, keyPrefix string, defaultTTL time.Duration, logger *slog.Logger) (*Cache, error) {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts, err := redis.ParseURL(connectionURL)
	if err != nil {
		return nil, feedgen.Errorf(feedgen.EINVALID, "invalid redis URL %q: %v", connectionURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, feedgen.Errorf(feedgen.EUNAVAILABLE, "connecting to redis at %s: %v", connectionURL, err)
	}

	logger.Info("redis cache initialized", "url", connectionURL, "key_prefix", keyPrefix)
	return &Cache{
		client:     client,
		keyPrefix:  keyPrefix,
		defaultTTL: defaultTTL,
		logger:     logger,
	}, nil
}

// Get returns the cached decoded URL for the source URL. Backend errors
// are logged and counted as misses.
func (c *Cache) Get(ctx context.Context, url string) (string, bool) {
	decoded, err := c.client.Get(ctx, c.key(url)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("redis cache get failed", "error", err)
		}
		c.misses++
		return "", false
	}
	c.hits++
	return decoded, true
}

// Set stores a decoded URL with the given TTL, falling back to the
// default TTL when ttl is zero. Errors are logged and swallowed.
func (c *Cache) Set(ctx context.Context, url, decoded string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.SetEx(ctx, c.key(url), decoded, ttl).Err(); err != nil {
		c.logger.Warn("redis cache set failed", "error", err)
		return
	}
	c.sets++
}

// Clear removes only this cache's keys from the shared store.
func (c *Cache) Clear(ctx context.Context) {
	keys, err := c.client.Keys(ctx, c.keyPrefix+"*").Result()
	if err != nil {
		c.logger.Warn("redis cache clear failed", "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("redis cache clear failed", "error", err)
		return
	}
	c.logger.Info("redis cache cleared", "removed", len(keys))
}

// Stats returns hit/miss counters and the number of keys currently in
// this cache's namespace.
func (c *Cache) Stats(ctx context.Context) feedgen.CacheStats {
	var size int64
	if keys, err := c.client.Keys(ctx, c.keyPrefix+"*").Result(); err != nil {
		c.logger.Warn("redis cache stats failed", "error", err)
	} else {
		size = int64(len(keys))
	}
	return feedgen.CacheStats{
		Hits:    c.hits,
		Misses:  c.misses,
		Sets:    c.sets,
		Size:    size,
		HitRate: hitRate(c.hits, c.misses),
	}
}

// Close releases the underlying client connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) key(url string) string {
	return c.keyPrefix + feedgen.CacheKey(url)
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
