package redis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/feedgen-project/feedgen"
	redcache "github.com/feedgen-project/feedgen/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCache(t *testing.T) (*redcache.Cache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	c, err := redcache.New(context.Background(), "redis://"+srv.Addr(), "feedgen:gnews:", time.Hour, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, srv
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("fails when the server is unreachable", func(t *testing.T) {
		t.Parallel()

		_, err := redcache.New(context.Background(), "redis://127.0.0.1:1", "", time.Hour, quietLogger())

		require.Error(t, err)
		assert.Equal(t, feedgen.EUNAVAILABLE, feedgen.ErrorCode(err))
	})

	t.Run("fails on an unparseable URL", func(t *testing.T) {
		t.Parallel()

		_, err := redcache.New(context.Background(), "://nope", "", time.Hour, quietLogger())

		require.Error(t, err)
		assert.Equal(t, feedgen.EINVALID, feedgen.ErrorCode(err))
	})
}

func TestCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stores and retrieves decoded URLs", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestCache(t)
		c.Set(ctx, "https://news.google.com/articles/CBMiabc", "https://real.example.com/story", 0)

		got, ok := c.Get(ctx, "https://news.google.com/articles/CBMiabc")

		require.True(t, ok)
		assert.Equal(t, "https://real.example.com/story", got)
	})

	t.Run("namespaces keys with the prefix", func(t *testing.T) {
		t.Parallel()

		c, srv := newTestCache(t)
		c.Set(ctx, "https://news.google.com/articles/CBMiabc", "https://real.example.com", 0)

		keys := srv.Keys()
		require.Len(t, keys, 1)
		assert.Contains(t, keys[0], "feedgen:gnews:")
	})

	t.Run("honors per-entry TTLs", func(t *testing.T) {
		t.Parallel()

		c, srv := newTestCache(t)
		c.Set(ctx, "https://news.google.com/articles/CBMiabc", "https://real.example.com", time.Minute)

		srv.FastForward(2 * time.Minute)

		_, ok := c.Get(ctx, "https://news.google.com/articles/CBMiabc")
		assert.False(t, ok)
	})

	t.Run("clear removes only namespaced keys", func(t *testing.T) {
		t.Parallel()

		c, srv := newTestCache(t)
		c.Set(ctx, "https://news.google.com/articles/CBMiabc", "https://real.example.com", 0)
		require.NoError(t, srv.Set("other:system:key", "keep"))

		c.Clear(ctx)

		_, ok := c.Get(ctx, "https://news.google.com/articles/CBMiabc")
		assert.False(t, ok)
		got, err := srv.Get("other:system:key")
		require.NoError(t, err)
		assert.Equal(t, "keep", got)
	})

	t.Run("degrades to miss when the server goes away", func(t *testing.T) {
		t.Parallel()

		c, srv := newTestCache(t)
		srv.Close()

		_, ok := c.Get(ctx, "https://news.google.com/articles/CBMiabc")
		assert.False(t, ok)

		// Set becomes a no-op rather than an error.
		c.Set(ctx, "https://news.google.com/articles/CBMiabc", "https://real.example.com", 0)
	})

	t.Run("reports stats", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestCache(t)
		c.Set(ctx, "https://news.google.com/articles/CBMiabc", "https://real.example.com", 0)
		c.Get(ctx, "https://news.google.com/articles/CBMiabc")
		c.Get(ctx, "https://news.google.com/articles/CBMimissing")

		stats := c.Stats(ctx)
		assert.Equal(t, int64(1), stats.Hits)
		assert.Equal(t, int64(1), stats.Misses)
		assert.Equal(t, int64(1), stats.Sets)
		assert.Equal(t, int64(1), stats.Size)
	})
}
