// Package lru provides the in-process decode cache backed by a bounded,
// TTL-expiring LRU.
package lru

import (
	"context"
	"log/slog"
	"time"

	"github.com/feedgen-project/feedgen"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultTTL is the default entry lifetime.
const DefaultTTL = 24 * time.Hour

// DefaultMaxSize bounds the cache when no size is configured.
const DefaultMaxSize = 1000

var _ feedgen.DecodeCache = (*Cache)(nil)

// Cache is a bounded in-process decode cache. Entries expire after the
// instance-wide TTL and the least recently used entry is evicted once
// the size bound is reached. Per-entry TTLs are not supported; a custom
// TTL is logged as ignored and the default applies.
type Cache struct {
	entries    *expirable.LRU[string, string]
	maxSize    int
	defaultTTL time.Duration
	logger     *slog.Logger

	// Plain counters: the pipeline issues no concurrent cache
	// operations, so no synchronization is required here.
	hits   int64
	misses int64
	sets   int64
}

// New creates a Cache with the given size bound and entry TTL.
// Non-positive values fall back to the defaults.
func New(maxSize int, defaultTTL time.Duration, logger *slog.Logger) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Cache{
		entries:    expirable.NewLRU[string, string](maxSize, nil, defaultTTL),
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
		logger:     logger,
	}
	logger.Info("memory cache initialized", "max_size", maxSize, "default_ttl", defaultTTL)
	return c
}

// Get returns the cached decoded URL for the source URL, if present and
// not expired.
func (c *Cache) Get(_ context.Context, url string) (string, bool) {
	decoded, ok := c.entries.Get(feedgen.CacheKey(url))
	if !ok {
		c.misses++
		return "", false
	}
	c.hits++
	return decoded, true
}

// Set stores a decoded URL under the instance-wide TTL. A non-zero ttl
// differing from the default is logged and ignored.
func (c *Cache) Set(_ context.Context, url, decoded string, ttl time.Duration) {
	if ttl != 0 && ttl != c.defaultTTL {
		c.logger.Warn("custom TTL not supported by memory cache, using default",
			"requested", ttl,
			"default", c.defaultTTL,
		)
	}
	c.entries.Add(feedgen.CacheKey(url), decoded)
	c.sets++
}

// Clear removes all entries.
func (c *Cache) Clear(_ context.Context) {
	c.entries.Purge()
	c.logger.Info("memory cache cleared")
}

// Stats returns hit/miss counters and the current size.
func (c *Cache) Stats(_ context.Context) feedgen.CacheStats {
	return feedgen.CacheStats{
		Hits:    c.hits,
		Misses:  c.misses,
		Sets:    c.sets,
		Size:    int64(c.entries.Len()),
		MaxSize: int64(c.maxSize),
		HitRate: hitRate(c.hits, c.misses),
	}
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
