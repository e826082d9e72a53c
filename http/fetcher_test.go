package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/feedgen-project/feedgen"
	feedgenhttp "github.com/feedgen-project/feedgen/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns the page body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html><body>hello</body></html>"))
		}))
		t.Cleanup(srv.Close)

		f := feedgenhttp.NewFetcher()
		t.Cleanup(func() { f.Close() })

		html, err := f.Fetch(ctx, srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "<html><body>hello</body></html>", html)
	})

	t.Run("sends the user agent header", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
		}))
		t.Cleanup(srv.Close)

		f := feedgenhttp.NewFetcher(feedgenhttp.WithUserAgent("custom-agent/2.0"))
		_, err := f.Fetch(ctx, srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "custom-agent/2.0", gotUA)
	})

	t.Run("defaults the user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
		}))
		t.Cleanup(srv.Close)

		f := feedgenhttp.NewFetcher()
		_, err := f.Fetch(ctx, srv.URL)

		require.NoError(t, err)
		assert.Equal(t, feedgenhttp.DefaultUserAgent, gotUA)
	})

	t.Run("fails with a fetch error on non-2xx status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		t.Cleanup(srv.Close)

		f := feedgenhttp.NewFetcher()
		_, err := f.Fetch(ctx, srv.URL)

		require.Error(t, err)
		assert.Equal(t, feedgen.EFETCH, feedgen.ErrorCode(err))
	})

	t.Run("fails with a fetch error when the server is unreachable", func(t *testing.T) {
		t.Parallel()

		f := feedgenhttp.NewFetcher()
		_, err := f.Fetch(ctx, "http://127.0.0.1:1")

		require.Error(t, err)
		assert.Equal(t, feedgen.EFETCH, feedgen.ErrorCode(err))
	})
}
