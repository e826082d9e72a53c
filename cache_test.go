package feedgen_test

import (
	"testing"

	"github.com/feedgen-project/feedgen"
	"github.com/stretchr/testify/assert"
)

func TestCacheKey(t *testing.T) {
	t.Parallel()

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		a := feedgen.CacheKey("https://news.google.com/articles/CBMiabc?hl=en")
		b := feedgen.CacheKey("https://news.google.com/articles/CBMiabc?hl=en")

		assert.Equal(t, a, b)
		assert.Len(t, a, 32)
	})

	t.Run("differs for different paths", func(t *testing.T) {
		t.Parallel()

		a := feedgen.CacheKey("https://news.google.com/articles/CBMiabc")
		b := feedgen.CacheKey("https://news.google.com/articles/CBMixyz")

		assert.NotEqual(t, a, b)
	})

	t.Run("differs for different queries", func(t *testing.T) {
		t.Parallel()

		a := feedgen.CacheKey("https://news.google.com/articles/CBMiabc?hl=en")
		b := feedgen.CacheKey("https://news.google.com/articles/CBMiabc?hl=ja")

		assert.NotEqual(t, a, b)
	})

	t.Run("ignores the scheme", func(t *testing.T) {
		t.Parallel()

		a := feedgen.CacheKey("https://news.google.com/articles/CBMiabc")
		b := feedgen.CacheKey("http://news.google.com/articles/CBMiabc")

		assert.Equal(t, a, b)
	})

	t.Run("handles unparseable input", func(t *testing.T) {
		t.Parallel()

		assert.Len(t, feedgen.CacheKey("not a url at all"), 32)
	})
}
