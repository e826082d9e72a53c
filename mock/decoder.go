package mock

import (
	"context"
	"time"

	"github.com/feedgen-project/feedgen"
)

var _ feedgen.LinkDecoder = (*LinkDecoder)(nil)

// LinkDecoder is a mock implementation of feedgen.LinkDecoder.
type LinkDecoder struct {
	DecodeFn func(ctx context.Context, url string, interval time.Duration) (*feedgen.DecodeResult, error)

	// DecodeInvoked counts Decode calls.
	DecodeInvoked int
}

func (d *LinkDecoder) Decode(ctx context.Context, url string, interval time.Duration) (*feedgen.DecodeResult, error) {
	d.DecodeInvoked++
	return d.DecodeFn(ctx, url, interval)
}

var _ feedgen.URLDecoder = (*URLDecoder)(nil)

// URLDecoder is a mock implementation of feedgen.URLDecoder.
type URLDecoder struct {
	IsNewsURLFn  func(url string) bool
	DecodeURLFn  func(ctx context.Context, url string) string
	DecodeURLsFn func(ctx context.Context, urls []string) []string
}

func (d *URLDecoder) IsNewsURL(url string) bool {
	return d.IsNewsURLFn(url)
}

func (d *URLDecoder) DecodeURL(ctx context.Context, url string) string {
	return d.DecodeURLFn(ctx, url)
}

func (d *URLDecoder) DecodeURLs(ctx context.Context, urls []string) []string {
	return d.DecodeURLsFn(ctx, urls)
}
