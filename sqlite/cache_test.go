package sqlite_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/feedgen-project/feedgen/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCache(t *testing.T) *sqlite.Cache {
	t.Helper()

	c, err := sqlite.New(":memory:", 10, time.Hour, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stores and retrieves decoded URLs", func(t *testing.T) {
		t.Parallel()

		c := newTestCache(t)
		c.Set(ctx, "https://news.google.com/articles/CBMiabc", "https://real.example.com/story", 0)

		got, ok := c.Get(ctx, "https://news.google.com/articles/CBMiabc")

		require.True(t, ok)
		assert.Equal(t, "https://real.example.com/story", got)
	})

	t.Run("misses for unknown URLs", func(t *testing.T) {
		t.Parallel()

		c := newTestCache(t)

		_, ok := c.Get(ctx, "https://news.google.com/articles/CBMiunknown")

		assert.False(t, ok)
	})

	t.Run("expires entries after their TTL", func(t *testing.T) {
		t.Parallel()

		c := newTestCache(t)
		// A nanosecond TTL lands within the current second, which the
		// second-granularity expiry check treats as already expired.
		c.Set(ctx, "https://news.google.com/articles/CBMiabc", "https://real.example.com", time.Nanosecond)

		_, ok := c.Get(ctx, "https://news.google.com/articles/CBMiabc")
		assert.False(t, ok)
		assert.Zero(t, c.Stats(ctx).Size)
	})

	t.Run("enforces the size bound", func(t *testing.T) {
		t.Parallel()

		c, err := sqlite.New(":memory:", 2, time.Hour, quietLogger())
		require.NoError(t, err)
		t.Cleanup(func() { c.Close() })

		c.Set(ctx, "https://news.google.com/articles/CBMia", "https://a.example.com", 0)
		c.Set(ctx, "https://news.google.com/articles/CBMib", "https://b.example.com", 0)
		c.Set(ctx, "https://news.google.com/articles/CBMic", "https://c.example.com", 0)

		assert.LessOrEqual(t, c.Stats(ctx).Size, int64(2))

		// The oldest entry is the one pruned.
		_, ok := c.Get(ctx, "https://news.google.com/articles/CBMia")
		assert.False(t, ok)
		got, ok := c.Get(ctx, "https://news.google.com/articles/CBMic")
		require.True(t, ok)
		assert.Equal(t, "https://c.example.com", got)
	})

	t.Run("clear removes everything", func(t *testing.T) {
		t.Parallel()

		c := newTestCache(t)
		c.Set(ctx, "https://news.google.com/articles/CBMia", "https://a.example.com", 0)

		c.Clear(ctx)

		_, ok := c.Get(ctx, "https://news.google.com/articles/CBMia")
		assert.False(t, ok)
		assert.Zero(t, c.Stats(ctx).Size)
	})

	t.Run("persists entries across reopens", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "cache.db")

		c1, err := sqlite.New(path, 10, time.Hour, quietLogger())
		require.NoError(t, err)
		c1.Set(ctx, "https://news.google.com/articles/CBMiabc", "https://real.example.com", 0)
		require.NoError(t, c1.Close())

		c2, err := sqlite.New(path, 10, time.Hour, quietLogger())
		require.NoError(t, err)
		t.Cleanup(func() { c2.Close() })

		got, ok := c2.Get(ctx, "https://news.google.com/articles/CBMiabc")
		require.True(t, ok)
		assert.Equal(t, "https://real.example.com", got)
	})

	t.Run("tracks hit and miss counters", func(t *testing.T) {
		t.Parallel()

		c := newTestCache(t)
		c.Set(ctx, "https://news.google.com/articles/CBMia", "https://a.example.com", 0)

		c.Get(ctx, "https://news.google.com/articles/CBMia")
		c.Get(ctx, "https://news.google.com/articles/CBMimissing")

		stats := c.Stats(ctx)
		assert.Equal(t, int64(1), stats.Hits)
		assert.Equal(t, int64(1), stats.Misses)
		assert.Equal(t, int64(1), stats.Sets)
		assert.InDelta(t, 0.5, stats.HitRate, 0.001)
	})
}
