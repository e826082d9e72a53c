package feedgen

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"time"
)

// CacheStats reports counters for a decode cache.
type CacheStats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	Size    int64   `json:"size"`
	MaxSize int64   `json:"maxSize,omitempty"`
	HitRate float64 `json:"hitRate"`
}

// DecodeCache stores decoded URLs keyed by their source Google News URL.
// Implementations must treat backend errors as misses or no-ops; cache
// failures never propagate to callers.
type DecodeCache interface {
	// Get returns the cached decoded URL for the given source URL.
	// The second return value reports whether an entry was found.
	Get(ctx context.Context, url string) (string, bool)

	// Set stores a decoded URL. A zero ttl means the backend's default;
	// backends without per-entry TTL support log and ignore non-zero
	// values.
	Set(ctx context.Context, url, decoded string, ttl time.Duration)

	// Clear removes all entries owned by this cache.
	Clear(ctx context.Context)

	// Stats returns hit/miss counters and current size.
	Stats(ctx context.Context) CacheStats
}

// CacheKey derives the cache key for a source URL. The derivation is a
// pure function of the URL: scheme and fragment are dropped, the
// remaining host+path[?query] form is hashed with SHA-256 and truncated
// to 32 hex characters. All backends share this derivation.
func CacheKey(rawURL string) string {
	normalized := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		normalized = u.Host + u.Path
		if u.RawQuery != "" {
			normalized += "?" + u.RawQuery
		}
	}
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])[:32]
}
