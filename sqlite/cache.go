// Package sqlite provides a persistent, file-backed decode cache so
// decoded URLs survive process restarts without an external store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/feedgen-project/feedgen"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DefaultTTL is the default entry lifetime.
const DefaultTTL = 24 * time.Hour

// DefaultMaxSize bounds the cache when no size is configured.
const DefaultMaxSize = 1000

var _ feedgen.DecodeCache = (*Cache)(nil)

// Cache is a SQLite-backed decode cache with per-entry TTLs. The size
// bound is enforced by deleting the oldest rows after each insert.
// Construction fails when the database cannot be opened; runtime
// operation errors are logged and degrade to miss or no-op.
type Cache struct {
	db         *sql.DB
	path       string
	maxSize    int
	defaultTTL time.Duration
	logger     *slog.Logger

	hits   int64
	misses int64
	sets   int64
}

// New opens (or creates) the cache database at path and bootstraps the
// schema. Use ":memory:" for an in-memory database. Returns an
// EUNAVAILABLE error when the database cannot be opened.
func New(path string, maxSize int, defaultTTL time.Duration, logger *slog.Logger) (*Cache, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, feedgen.Errorf(feedgen.EUNAVAILABLE, "opening cache database: %v", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, feedgen.Errorf(feedgen.EUNAVAILABLE, "connecting to cache database: %v", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, feedgen.Errorf(feedgen.EUNAVAILABLE, "setting busy timeout: %v", err)
	}

	// WAL mode is not supported for in-memory databases.
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, feedgen.Errorf(feedgen.EUNAVAILABLE, "enabling WAL mode: %v", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS decode_cache (
			key TEXT PRIMARY KEY,
			decoded_url TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_decode_cache_created_at ON decode_cache(created_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, feedgen.Errorf(feedgen.EUNAVAILABLE, "creating cache schema: %v", err)
	}

	logger.Info("sqlite cache initialized", "path", path, "max_size", maxSize, "default_ttl", defaultTTL)
	return &Cache{
		db:         db,
		path:       path,
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
		logger:     logger,
	}, nil
}

// Get returns the cached decoded URL for the source URL. Expired rows
// count as misses and are removed lazily.
func (c *Cache) Get(ctx context.Context, url string) (string, bool) {
	key := feedgen.CacheKey(url)

	var decoded string
	var expiresAt int64
	err := c.db.QueryRowContext(ctx,
		`SELECT decoded_url, expires_at FROM decode_cache WHERE key = ?`, key,
	).Scan(&decoded, &expiresAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			c.logger.Warn("sqlite cache get failed", "error", err)
		}
		c.misses++
		return "", false
	}

	if time.Now().Unix() >= expiresAt {
		if _, err := c.db.ExecContext(ctx, `DELETE FROM decode_cache WHERE key = ?`, key); err != nil {
			c.logger.Warn("sqlite cache expiry cleanup failed", "error", err)
		}
		c.misses++
		return "", false
	}

	c.hits++
	return decoded, true
}

// Set stores a decoded URL with the given TTL, falling back to the
// default TTL when ttl is zero, then trims the oldest rows beyond the
// size bound. Errors are logged and swallowed.
func (c *Cache) Set(ctx context.Context, url, decoded string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	now := time.Now()

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO decode_cache (key, decoded_url, expires_at, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			decoded_url = excluded.decoded_url,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at`,
		feedgen.CacheKey(url), decoded, now.Add(ttl).Unix(), now.UnixNano(),
	)
	if err != nil {
		c.logger.Warn("sqlite cache set failed", "error", err)
		return
	}
	c.sets++

	_, err = c.db.ExecContext(ctx,
		`DELETE FROM decode_cache WHERE key NOT IN (
			SELECT key FROM decode_cache ORDER BY created_at DESC LIMIT ?
		)`, c.maxSize,
	)
	if err != nil {
		c.logger.Warn("sqlite cache trim failed", "error", err)
	}
}

// Clear removes all entries.
func (c *Cache) Clear(ctx context.Context) {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM decode_cache`); err != nil {
		c.logger.Warn("sqlite cache clear failed", "error", err)
		return
	}
	c.logger.Info("sqlite cache cleared")
}

// Stats returns hit/miss counters and the current row count.
func (c *Cache) Stats(ctx context.Context) feedgen.CacheStats {
	var size int64
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM decode_cache`).Scan(&size); err != nil {
		c.logger.Warn("sqlite cache stats failed", "error", err)
	}
	return feedgen.CacheStats{
		Hits:    c.hits,
		Misses:  c.misses,
		Sets:    c.sets,
		Size:    size,
		MaxSize: int64(c.maxSize),
		HitRate: hitRate(c.hits, c.misses),
	}
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
