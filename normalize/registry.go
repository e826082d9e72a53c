// Package normalize resolves hrefs found on pages into absolute URLs.
// It provides per-site normalizer strategies and an ordered registry
// that dispatches to the first strategy matching the page's base URL.
package normalize

import "github.com/feedgen-project/feedgen"

var _ feedgen.NormalizerRegistry = (*Registry)(nil)

// Registry dispatches URL normalization over an ordered list of
// strategies, first match wins. New registers site-specific strategies
// before the catch-all default, so dispatch always terminates.
type Registry struct {
	normalizers []feedgen.URLNormalizer
}

// New creates a Registry with the default strategy set: Google News and
// YouTube first, the generic fallback last. The decoder routes obfuscated
// Google News links to their destination and may be nil.
func New(decoder feedgen.URLDecoder) *Registry {
	r := &Registry{}
	r.Register(NewGoogleNews(decoder))
	r.Register(NewYouTube())
	r.Register(NewDefault())
	return r
}

// NewEmpty creates a Registry with no registered strategies.
// Callers must register a catch-all strategy last.
func NewEmpty() *Registry {
	return &Registry{}
}

// Register appends a strategy to the dispatch order.
func (r *Registry) Register(n feedgen.URLNormalizer) {
	r.normalizers = append(r.normalizers, n)
}

// Normalize resolves href against baseURL using the first strategy whose
// CanHandle accepts the base URL.
func (r *Registry) Normalize(href, baseURL string) string {
	for _, n := range r.normalizers {
		if n.CanHandle(baseURL) {
			return n.Normalize(href, baseURL)
		}
	}
	// Unreachable with the default setup; kept so a custom registry
	// without a catch-all still produces a usable URL.
	return NewDefault().Normalize(href, baseURL)
}
