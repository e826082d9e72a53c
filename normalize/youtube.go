package normalize

import (
	"net/url"
	"strings"

	"github.com/feedgen-project/feedgen"
)

// youtubeRoot is the canonical host video links are rewritten onto.
const youtubeRoot = "https://www.youtube.com"

var _ feedgen.URLNormalizer = (*YouTubeNormalizer)(nil)

// YouTubeNormalizer handles hrefs on www.youtube.com pages. Watch,
// shorts, handle and channel paths (and any other root-relative href)
// are rewritten onto the canonical www host.
//
// Known gap: bare youtube.com and m.youtube.com base URLs do not match
// and fall through to the default strategy. Those subdomains serve
// different markup, so links from them are left to generic resolution.
type YouTubeNormalizer struct{}

// NewYouTube creates a YouTubeNormalizer.
func NewYouTube() *YouTubeNormalizer {
	return &YouTubeNormalizer{}
}

// CanHandle reports whether the base URL is served from www.youtube.com.
func (n *YouTubeNormalizer) CanHandle(baseURL string) bool {
	u, err := url.Parse(baseURL)
	return err == nil && u.Host == "www.youtube.com"
}

// Normalize resolves href onto the canonical YouTube host.
func (n *YouTubeNormalizer) Normalize(href, baseURL string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	// Covers /watch, /shorts/, /@handle, /c/, /channel/ and every other
	// root-relative path.
	if strings.HasPrefix(href, "/") {
		return youtubeRoot + href
	}
	return youtubeRoot + "/" + strings.TrimLeft(href, "/")
}
