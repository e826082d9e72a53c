package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/feedgen-project/feedgen"
)

// Ensure LoggingDecoder implements feedgen.URLDecoder.
var _ feedgen.URLDecoder = (*LoggingDecoder)(nil)

// LoggingDecoder wraps a URLDecoder with logging of decode outcomes.
type LoggingDecoder struct {
	next   feedgen.URLDecoder
	logger *slog.Logger
}

// NewLoggingDecoder creates a new LoggingDecoder.
func NewLoggingDecoder(next feedgen.URLDecoder, logger *slog.Logger) *LoggingDecoder {
	return &LoggingDecoder{next: next, logger: logger}
}

// IsNewsURL delegates to the wrapped decoder.
func (d *LoggingDecoder) IsNewsURL(url string) bool {
	return d.next.IsNewsURL(url)
}

// DecodeURL delegates to the wrapped decoder and logs whether the URL
// changed.
func (d *LoggingDecoder) DecodeURL(ctx context.Context, url string) (decoded string) {
	defer func(begin time.Time) {
		d.logger.Info("decode",
			"url", url,
			"changed", decoded != url,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return d.next.DecodeURL(ctx, url)
}

// DecodeURLs delegates to the wrapped decoder and logs batch size and
// duration.
func (d *LoggingDecoder) DecodeURLs(ctx context.Context, urls []string) (decoded []string) {
	defer func(begin time.Time) {
		changed := 0
		for i := range urls {
			if i < len(decoded) && decoded[i] != urls[i] {
				changed++
			}
		}
		d.logger.Info("decode batch",
			"count", len(urls),
			"changed", changed,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return d.next.DecodeURLs(ctx, urls)
}
