package mock

import (
	"context"
	"time"

	"github.com/feedgen-project/feedgen"
)

var _ feedgen.DecodeCache = (*DecodeCache)(nil)

// DecodeCache is a mock implementation of feedgen.DecodeCache.
type DecodeCache struct {
	GetFn   func(ctx context.Context, url string) (string, bool)
	SetFn   func(ctx context.Context, url, decoded string, ttl time.Duration)
	ClearFn func(ctx context.Context)
	StatsFn func(ctx context.Context) feedgen.CacheStats

	// GetInvoked and SetInvoked count calls.
	GetInvoked int
	SetInvoked int
}

func (c *DecodeCache) Get(ctx context.Context, url string) (string, bool) {
	c.GetInvoked++
	return c.GetFn(ctx, url)
}

func (c *DecodeCache) Set(ctx context.Context, url, decoded string, ttl time.Duration) {
	c.SetInvoked++
	c.SetFn(ctx, url, decoded, ttl)
}

func (c *DecodeCache) Clear(ctx context.Context) {
	c.ClearFn(ctx)
}

func (c *DecodeCache) Stats(ctx context.Context) feedgen.CacheStats {
	return c.StatsFn(ctx)
}
