package lru_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/feedgen-project/feedgen/lru"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stores and retrieves decoded URLs", func(t *testing.T) {
		t.Parallel()

		c := lru.New(10, time.Minute, quietLogger())
		c.Set(ctx, "https://news.google.com/articles/CBMiabc", "https://real.example.com/story", 0)

		got, ok := c.Get(ctx, "https://news.google.com/articles/CBMiabc")

		require.True(t, ok)
		assert.Equal(t, "https://real.example.com/story", got)
	})

	t.Run("misses for unknown URLs", func(t *testing.T) {
		t.Parallel()

		c := lru.New(10, time.Minute, quietLogger())

		_, ok := c.Get(ctx, "https://news.google.com/articles/CBMiunknown")

		assert.False(t, ok)
	})

	t.Run("ignores custom per-entry TTLs", func(t *testing.T) {
		t.Parallel()

		c := lru.New(10, time.Minute, quietLogger())
		// The requested one-hour TTL is downgraded to the default.
		c.Set(ctx, "https://news.google.com/articles/CBMiabc", "https://real.example.com", time.Hour)

		got, ok := c.Get(ctx, "https://news.google.com/articles/CBMiabc")

		require.True(t, ok)
		assert.Equal(t, "https://real.example.com", got)
	})

	t.Run("expires entries after the default TTL", func(t *testing.T) {
		t.Parallel()

		c := lru.New(10, 10*time.Millisecond, quietLogger())
		c.Set(ctx, "https://news.google.com/articles/CBMiabc", "https://real.example.com", 0)

		time.Sleep(30 * time.Millisecond)

		_, ok := c.Get(ctx, "https://news.google.com/articles/CBMiabc")
		assert.False(t, ok)
	})

	t.Run("enforces the size bound", func(t *testing.T) {
		t.Parallel()

		c := lru.New(2, time.Minute, quietLogger())
		c.Set(ctx, "https://news.google.com/articles/CBMia", "https://a.example.com", 0)
		c.Set(ctx, "https://news.google.com/articles/CBMib", "https://b.example.com", 0)
		c.Set(ctx, "https://news.google.com/articles/CBMic", "https://c.example.com", 0)

		stats := c.Stats(ctx)
		assert.LessOrEqual(t, stats.Size, int64(2))
	})

	t.Run("clear removes everything", func(t *testing.T) {
		t.Parallel()

		c := lru.New(10, time.Minute, quietLogger())
		c.Set(ctx, "https://news.google.com/articles/CBMia", "https://a.example.com", 0)
		c.Clear(ctx)

		_, ok := c.Get(ctx, "https://news.google.com/articles/CBMia")
		assert.False(t, ok)
		assert.Zero(t, c.Stats(ctx).Size)
	})

	t.Run("tracks hit and miss counters", func(t *testing.T) {
		t.Parallel()

		c := lru.New(10, time.Minute, quietLogger())
		c.Set(ctx, "https://news.google.com/articles/CBMia", "https://a.example.com", 0)

		c.Get(ctx, "https://news.google.com/articles/CBMia")
		c.Get(ctx, "https://news.google.com/articles/CBMia")
		c.Get(ctx, "https://news.google.com/articles/CBMimissing")

		stats := c.Stats(ctx)
		assert.Equal(t, int64(2), stats.Hits)
		assert.Equal(t, int64(1), stats.Misses)
		assert.Equal(t, int64(1), stats.Sets)
		assert.InDelta(t, 2.0/3.0, stats.HitRate, 0.001)
	})
}
