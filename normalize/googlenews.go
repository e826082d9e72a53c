package normalize

import (
	"context"
	"net/url"
	"strings"

	"github.com/feedgen-project/feedgen"
)

// googleNewsRoot is the canonical origin all Google News hrefs resolve
// against, regardless of the base URL's path.
const googleNewsRoot = "https://news.google.com"

var _ feedgen.URLNormalizer = (*GoogleNewsNormalizer)(nil)

// GoogleNewsNormalizer handles hrefs on news.google.com pages. Article
// links use aggregator-specific "./articles/..." and "./read/..."
// relative forms, and absolute links may be obfuscated redirect URLs
// that the decoder resolves to the real destination.
type GoogleNewsNormalizer struct {
	decoder feedgen.URLDecoder
}

// NewGoogleNews creates a GoogleNewsNormalizer. The decoder is optional;
// without one, obfuscated links are returned as-is.
func NewGoogleNews(decoder feedgen.URLDecoder) *GoogleNewsNormalizer {
	return &GoogleNewsNormalizer{decoder: decoder}
}

// CanHandle reports whether the base URL is served from news.google.com.
func (n *GoogleNewsNormalizer) CanHandle(baseURL string) bool {
	u, err := url.Parse(baseURL)
	return err == nil && u.Host == "news.google.com"
}

// Normalize resolves href against the Google News origin and routes
// obfuscated redirect links through the decoder.
func (n *GoogleNewsNormalizer) Normalize(href, baseURL string) string {
	if strings.HasPrefix(href, "http") {
		return n.decode(href)
	}

	// Aggregator-specific relative forms: "./articles/..." and
	// "./read/..." append to the aggregator root.
	if strings.HasPrefix(href, "./articles/") || strings.HasPrefix(href, "./read/") {
		return n.decode(googleNewsRoot + "/" + strings.TrimPrefix(href, "./"))
	}

	if strings.HasPrefix(href, "/") {
		return googleNewsRoot + href
	}
	return googleNewsRoot + "/" + strings.TrimLeft(href, "/")
}

// decode routes obfuscated links through the decoder when one is
// configured. Normalization itself carries no context; the decoder owns
// its own timeout and retry bounds.
func (n *GoogleNewsNormalizer) decode(u string) string {
	if n.decoder != nil && n.decoder.IsNewsURL(u) {
		return n.decoder.DecodeURL(context.Background(), u)
	}
	return u
}
