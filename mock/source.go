package mock

import (
	"context"

	"github.com/feedgen-project/feedgen"
)

var _ feedgen.FeedSource = (*FeedSource)(nil)

// FeedSource is a mock implementation of feedgen.FeedSource.
type FeedSource struct {
	CanHandleURLFn func(url string) bool
	ItemsFn        func(ctx context.Context, url string, maxItems int) ([]*feedgen.FeedItem, error)
}

func (s *FeedSource) CanHandleURL(url string) bool {
	return s.CanHandleURLFn(url)
}

func (s *FeedSource) Items(ctx context.Context, url string, maxItems int) ([]*feedgen.FeedItem, error) {
	return s.ItemsFn(ctx, url, maxItems)
}
