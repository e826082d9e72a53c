package feedgen

// URLNormalizer resolves an href found on a page into an absolute URL.
// Implementations are site-specific strategies selected by the host of
// the base URL; both methods are pure functions of their inputs except
// for the Google News strategy, which may route obfuscated links through
// a decoder.
//
// Normalize carries no context, so a strategy that performs network
// work cannot observe caller cancellation; any such work must be
// bounded by the strategy's own timeout and retry configuration.
type URLNormalizer interface {
	// CanHandle reports whether this strategy applies to pages served
	// from the given base URL.
	CanHandle(baseURL string) bool

	// Normalize resolves href against baseURL and returns an absolute URL.
	Normalize(href, baseURL string) string
}

// NormalizerRegistry dispatches normalization to the first registered
// strategy whose CanHandle accepts the base URL. Registration order is
// significant: site-specific strategies come first and a catch-all
// fallback must be registered last to guarantee termination.
type NormalizerRegistry interface {
	// Register appends a strategy to the dispatch order.
	Register(n URLNormalizer)

	// Normalize resolves href against baseURL using the first matching
	// strategy.
	Normalize(href, baseURL string) string
}
