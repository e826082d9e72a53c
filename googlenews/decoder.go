// Package googlenews decodes obfuscated Google News redirect links into
// real article URLs via an injected external decoding capability, with
// retry, pacing and a pluggable cache. Every failure path degrades to
// returning the original URL; this component never raises to callers.
package googlenews

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/feedgen-project/feedgen"
	"golang.org/x/time/rate"
)

// newsHost is the aggregator host whose article links are obfuscated.
const newsHost = "news.google.com"

// obfuscatedMarker is the opaque token prefix characteristic of the
// obfuscation scheme; article links without it decode to themselves.
const obfuscatedMarker = "CBMi"

var _ feedgen.URLDecoder = (*Decoder)(nil)

// Decoder resolves obfuscated Google News links through an external
// decoding capability. The capability and cache are injected at
// construction time; both are optional, and their absence is a valid
// configuration, not an error.
type Decoder struct {
	capability feedgen.LinkDecoder
	cache      feedgen.DecodeCache
	interval   time.Duration
	timeout    time.Duration
	maxRetries int
	logger     *slog.Logger
}

// New creates a Decoder from cfg. The capability performs the actual
// decode calls and may be nil, in which case every decode is a no-op.
// The cache may be nil to disable caching.
func New(cfg Config, capability feedgen.LinkDecoder, cache feedgen.DecodeCache, logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Decoder{
		capability: capability,
		cache:      cache,
		interval:   cfg.RequestInterval,
		timeout:    cfg.RequestTimeout,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

// IsNewsURL reports whether the URL is an obfuscated Google News
// redirect link: aggregator host, an /articles/ path segment, and the
// obfuscation marker.
func (d *Decoder) IsNewsURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Host == newsHost &&
		strings.Contains(u.Path, "/articles/") &&
		strings.Contains(rawURL, obfuscatedMarker)
}

// DecodeURL resolves an obfuscated link to the destination article URL.
// Unrecognized URLs pass through untouched with no cache or network
// interaction. When the capability is missing, the cache errors, the
// decode fails or retries are exhausted, the original URL is returned.
func (d *Decoder) DecodeURL(ctx context.Context, rawURL string) string {
	if !d.IsNewsURL(rawURL) {
		return rawURL
	}

	if d.capability == nil {
		d.logger.Warn("decode capability not configured, returning original URL")
		return rawURL
	}

	if d.cache != nil {
		if decoded, ok := d.cache.Get(ctx, rawURL); ok && decoded != "" {
			d.logger.Info("decode cache hit",
				"url", truncate(rawURL, 100),
				"decoded", truncate(decoded, 100),
			)
			return decoded
		}
	}

	// Burst of one: the first attempt runs immediately, every retry
	// waits out the request interval first.
	limiter := rate.NewLimiter(rate.Every(d.interval), 1)

	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			d.logger.Warn("decode canceled", "url", truncate(rawURL, 100), "error", err)
			return rawURL
		}

		d.logger.Info("decoding google news URL",
			"attempt", attempt+1,
			"url", truncate(rawURL, 100),
		)

		decoded, ok := d.attempt(ctx, rawURL)
		if !ok {
			continue
		}

		if d.cache != nil {
			d.cache.Set(ctx, rawURL, decoded, 0)
		}
		return decoded
	}

	d.logger.Warn("decode failed after all attempts, returning original URL",
		"attempts", d.maxRetries+1,
		"url", truncate(rawURL, 100),
	)
	return rawURL
}

// DecodeURLs decodes a batch sequentially, preserving input order and
// length. After each URL whose decode changed the value, the request
// interval is waited out as an additional politeness delay toward the
// third-party decode service.
func (d *Decoder) DecodeURLs(ctx context.Context, urls []string) []string {
	decoded := make([]string, 0, len(urls))
	for _, u := range urls {
		result := d.DecodeURL(ctx, u)
		decoded = append(decoded, result)

		if result != u && d.interval > 0 {
			select {
			case <-ctx.Done():
				// Remaining URLs pass through undecoded.
			case <-time.After(d.interval):
			}
		}
	}
	return decoded
}

// attempt performs one decode call. Returns the decoded URL and true on
// success; logs and returns false on capability errors or failed results.
func (d *Decoder) attempt(ctx context.Context, rawURL string) (string, bool) {
	callCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	result, err := d.capability.Decode(callCtx, rawURL, d.interval)
	if err != nil {
		d.logger.Warn("decode attempt failed", "url", truncate(rawURL, 100), "error", err)
		return "", false
	}
	if result == nil || !result.Status {
		msg := "unknown error"
		if result != nil && result.Message != "" {
			msg = result.Message
		}
		d.logger.Warn("decode rejected", "url", truncate(rawURL, 100), "message", msg)
		return "", false
	}
	if result.DecodedURL == "" || result.DecodedURL == rawURL {
		d.logger.Warn("decode returned no new URL", "url", truncate(rawURL, 100))
		return "", false
	}

	d.logger.Info("decoded google news URL", "decoded", truncate(result.DecodedURL, 100))
	return result.DecodedURL, true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
