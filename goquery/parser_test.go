package goquery_test

import (
	"testing"

	"github.com/feedgen-project/feedgen/goquery"
	"github.com/feedgen-project/feedgen/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtractor() *goquery.Extractor {
	return goquery.New(normalize.New(nil))
}

func TestParseMetadata(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and meta description", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<title> Example Blog </title>
			<meta name="description" content="A blog about examples.">
		</head><body></body></html>`

		meta, err := newExtractor().ParseMetadata(html, "https://example.com/blog")

		require.NoError(t, err)
		assert.Equal(t, "Example Blog", meta.Title)
		assert.Equal(t, "A blog about examples.", meta.Description)
		assert.Equal(t, "https://example.com/blog", meta.Link)
	})

	t.Run("falls back to untitled", func(t *testing.T) {
		t.Parallel()

		meta, err := newExtractor().ParseMetadata("<html><body></body></html>", "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, "untitled", meta.Title)
		assert.Empty(t, meta.Description)
	})

	t.Run("falls back to the first paragraph for the description", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>T</title></head>
			<body><p>Opening paragraph of the page.</p></body></html>`

		meta, err := newExtractor().ParseMetadata(html, "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, "Opening paragraph of the page....", meta.Description)
	})
}
