package normalize

import (
	"net/url"
	"strings"

	"github.com/feedgen-project/feedgen"
)

var _ feedgen.URLNormalizer = (*DefaultNormalizer)(nil)

// DefaultNormalizer is the catch-all strategy. It accepts every base URL
// and must be registered last.
type DefaultNormalizer struct{}

// NewDefault creates a DefaultNormalizer.
func NewDefault() *DefaultNormalizer {
	return &DefaultNormalizer{}
}

// CanHandle always returns true.
func (n *DefaultNormalizer) CanHandle(baseURL string) bool {
	return true
}

// Normalize resolves href against baseURL. Absolute URLs pass through
// unchanged; root-relative hrefs combine with the base URL's origin,
// ignoring the base path; anything else joins onto the full base URL
// with a single slash.
func (n *DefaultNormalizer) Normalize(href, baseURL string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
			return u.Scheme + "://" + u.Host + href
		}
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(href, "/")
}
