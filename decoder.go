package feedgen

import (
	"context"
	"time"
)

// DecodeResult is the outcome of a single decode call against the
// external decoding capability.
type DecodeResult struct {
	// Status reports whether the capability considers the decode
	// successful. Capabilities that only ever produce a plain URL set
	// DecodedURL and leave Status true.
	Status bool

	// DecodedURL is the resolved destination URL.
	DecodedURL string

	// Message carries the capability's failure detail when Status is false.
	Message string
}

// LinkDecoder is the external capability that resolves an obfuscated
// redirect link into its destination URL. It is injected at construction
// time; absence is a valid, fully supported configuration.
type LinkDecoder interface {
	// Decode resolves the given URL. The interval hints at the pacing
	// the capability should apply to its own internal requests.
	Decode(ctx context.Context, url string, interval time.Duration) (*DecodeResult, error)
}

// URLDecoder converts obfuscated Google News redirect links into real
// article URLs. Every failure path degrades to returning the input
// unchanged; implementations never propagate decode errors.
type URLDecoder interface {
	// IsNewsURL reports whether the URL is an obfuscated Google News
	// redirect link.
	IsNewsURL(url string) bool

	// DecodeURL resolves an obfuscated link to its destination.
	// Non-news URLs and all failure modes return the input unchanged.
	DecodeURL(ctx context.Context, url string) string

	// DecodeURLs decodes a batch sequentially, preserving order and
	// length, with a politeness delay after each changed value.
	DecodeURLs(ctx context.Context, urls []string) []string
}
