package mock

import "github.com/feedgen-project/feedgen"

var _ feedgen.URLNormalizer = (*URLNormalizer)(nil)

// URLNormalizer is a mock implementation of feedgen.URLNormalizer.
type URLNormalizer struct {
	CanHandleFn func(baseURL string) bool
	NormalizeFn func(href, baseURL string) string
}

func (n *URLNormalizer) CanHandle(baseURL string) bool {
	return n.CanHandleFn(baseURL)
}

func (n *URLNormalizer) Normalize(href, baseURL string) string {
	return n.NormalizeFn(href, baseURL)
}

var _ feedgen.NormalizerRegistry = (*NormalizerRegistry)(nil)

// NormalizerRegistry is a mock implementation of feedgen.NormalizerRegistry.
type NormalizerRegistry struct {
	RegisterFn  func(n feedgen.URLNormalizer)
	NormalizeFn func(href, baseURL string) string
}

func (r *NormalizerRegistry) Register(n feedgen.URLNormalizer) {
	r.RegisterFn(n)
}

func (r *NormalizerRegistry) Normalize(href, baseURL string) string {
	return r.NormalizeFn(href, baseURL)
}
