// Package mock provides hand-written mocks for the feedgen interfaces.
package mock

import (
	"context"

	"github.com/feedgen-project/feedgen"
)

var _ feedgen.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of feedgen.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
