package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	main "github.com/feedgen-project/feedgen/cmd/feedgen"
	"github.com/feedgen-project/feedgen/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `<html><head><title>Example Blog</title></head><body>
<h2><a href="/posts/first">First post</a></h2>
<h2><a href="/posts/second">Second post</a></h2>
</body></html>`

func staticFetcher(html string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return html, nil
		},
	}
}

func TestRun_Generate(t *testing.T) {
	t.Parallel()

	t.Run("prints an RSS document", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = staticFetcher(listingHTML)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"generate", "https://blog.example.com"}, stdout, stderr)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "<rss")
		assert.Contains(t, out, "Example Blog")
		assert.Contains(t, out, "https://blog.example.com/posts/first")
	})

	t.Run("prints JSON when requested", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = staticFetcher(listingHTML)
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"generate", "--format", "json", "https://blog.example.com"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"title": "Example Blog"`)
		assert.Contains(t, stdout.String(), `"items"`)
	})

	t.Run("bounds the item count", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = staticFetcher(listingHTML)
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"generate", "--max-items", "1", "https://blog.example.com"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "/posts/first")
		assert.NotContains(t, stdout.String(), "/posts/second")
	})

	t.Run("writes to a file with --output", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "feed.xml")
		m := main.NewMain()
		m.Fetcher = staticFetcher(listingHTML)
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"generate", "-o", path, "https://blog.example.com"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Feed written to")
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<rss")
	})

	t.Run("fails on an invalid URL", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = staticFetcher(listingHTML)

		err := m.Run(context.Background(), []string{"generate", "not-a-url"}, &bytes.Buffer{}, &bytes.Buffer{})

		assert.Error(t, err)
	})
}

func TestRun_Detect(t *testing.T) {
	t.Parallel()

	t.Run("lists declared feeds", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html><head>
				<link rel="alternate" type="application/rss+xml" title="Site RSS" href="/feed.xml">
			</head></html>`))
		}))
		t.Cleanup(srv.Close)

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"detect", srv.URL}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "RSS")
		assert.Contains(t, stdout.String(), srv.URL+"/feed.xml")
	})
}

func TestRun_Proxy(t *testing.T) {
	t.Parallel()

	t.Run("prints the fetched feed", func(t *testing.T) {
		t.Parallel()

		const doc = `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title></channel></rss>`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/rss+xml")
			w.Write([]byte(doc))
		}))
		t.Cleanup(srv.Close)

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"proxy", srv.URL}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), doc)
	})
}

func TestRun_Cache(t *testing.T) {
	t.Parallel()

	t.Run("reports stats for the default memory cache", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"cache", "stats"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "entries:")
		assert.Contains(t, stdout.String(), "hit rate:")
	})

	t.Run("reports a disabled cache", func(t *testing.T) {
		t.Parallel()

		cfg := filepath.Join(t.TempDir(), "settings.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("cache_enabled: false\n"), 0o644))

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"-c", cfg, "cache", "stats"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "disabled")
	})

	t.Run("clears the cache", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"cache", "clear"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "cleared")
	})
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	err := main.NewMain().Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	assert.Error(t, err)
}
