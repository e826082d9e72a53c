// Package cache selects and constructs a decode cache backend from
// configuration. Backend failures at construction fall back to the
// in-process cache so URL decoding keeps working without persistence.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/feedgen-project/feedgen"
	"github.com/feedgen-project/feedgen/lru"
	"github.com/feedgen-project/feedgen/redis"
	"github.com/feedgen-project/feedgen/sqlite"
)

// Supported backend types.
const (
	// TypeMemory is the bounded in-process LRU backend.
	TypeMemory = "memory"

	// TypeExternal is the Redis-backed shared backend.
	TypeExternal = "external"

	// TypeSQLite is the persistent file-backed backend.
	TypeSQLite = "sqlite"
)

// Config selects and tunes a cache backend.
type Config struct {
	// Enabled gates cache construction entirely. New returns nil
	// when false and callers run uncached.
	Enabled bool

	// Type names the backend: memory, external or sqlite. Unknown
	// values fall back to memory.
	Type string

	// TTL is the default entry lifetime.
	TTL time.Duration

	// MaxSize bounds the memory and sqlite backends.
	MaxSize int

	// ConnectionURL locates the external backend's server.
	ConnectionURL string

	// KeyPrefix namespaces the external backend's keys.
	KeyPrefix string

	// Path locates the sqlite backend's database file.
	Path string
}

// DefaultConfig returns the documented cache defaults: enabled,
// in-process, one day TTL, 1000 entries.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		Type:          TypeMemory,
		TTL:           24 * time.Hour,
		MaxSize:       1000,
		ConnectionURL: "redis://localhost:6379/0",
		KeyPrefix:     redis.DefaultKeyPrefix,
		Path:          "feedgen_cache.db",
	}
}

// ConfigFromMap resolves cache settings from a flat settings mapping.
// Recognized keys: cache_enabled, cache_type, cache_ttl (seconds),
// cache_max_size, cache_connection_url, cache_key_prefix, cache_path.
// Missing or mistyped values fall back to the defaults.
func ConfigFromMap(settings map[string]any) Config {
	cfg := DefaultConfig()
	if v, ok := boolSetting(settings, "cache_enabled"); ok {
		cfg.Enabled = v
	}
	if v, ok := stringSetting(settings, "cache_type"); ok {
		cfg.Type = v
	}
	if v, ok := intSetting(settings, "cache_ttl"); ok {
		cfg.TTL = time.Duration(v) * time.Second
	}
	if v, ok := intSetting(settings, "cache_max_size"); ok {
		cfg.MaxSize = v
	}
	if v, ok := stringSetting(settings, "cache_connection_url"); ok {
		cfg.ConnectionURL = v
	}
	if v, ok := stringSetting(settings, "cache_key_prefix"); ok {
		cfg.KeyPrefix = v
	}
	if v, ok := stringSetting(settings, "cache_path"); ok {
		cfg.Path = v
	}
	return cfg
}

// New builds the configured cache backend. Returns nil when caching is
// disabled. When the external or sqlite backend cannot be constructed
// the failure is logged and an in-process cache is returned instead, so
// New never fails once caching is enabled.
func New(ctx context.Context, cfg Config, logger *slog.Logger) feedgen.DecodeCache {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Enabled {
		logger.Info("decode cache disabled")
		return nil
	}

	switch cfg.Type {
	case TypeExternal:
		c, err := redis.New(ctx, cfg.ConnectionURL, cfg.KeyPrefix, cfg.TTL, logger)
		if err != nil {
			logger.Warn("external cache unavailable, falling back to memory cache", "error", err)
			return lru.New(cfg.MaxSize, cfg.TTL, logger)
		}
		return c
	case TypeSQLite:
		c, err := sqlite.New(cfg.Path, cfg.MaxSize, cfg.TTL, logger)
		if err != nil {
			logger.Warn("sqlite cache unavailable, falling back to memory cache", "error", err)
			return lru.New(cfg.MaxSize, cfg.TTL, logger)
		}
		return c
	case TypeMemory:
		return lru.New(cfg.MaxSize, cfg.TTL, logger)
	default:
		logger.Warn("unknown cache type, using memory cache", "type", cfg.Type)
		return lru.New(cfg.MaxSize, cfg.TTL, logger)
	}
}

func boolSetting(settings map[string]any, key string) (bool, bool) {
	v, ok := settings[key].(bool)
	return v, ok
}

func stringSetting(settings map[string]any, key string) (string, bool) {
	v, ok := settings[key].(string)
	return v, ok
}

func intSetting(settings map[string]any, key string) (int, bool) {
	switch v := settings[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}
