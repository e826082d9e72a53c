package mock

import (
	"context"

	"github.com/feedgen-project/feedgen"
)

var _ feedgen.FeedDetector = (*FeedDetector)(nil)

// FeedDetector is a mock implementation of feedgen.FeedDetector.
type FeedDetector struct {
	DetectFeedsFn func(ctx context.Context, pageURL string) ([]*feedgen.DetectedFeed, error)
	FetchFeedFn   func(ctx context.Context, feedURL string) (string, string, error)
}

func (d *FeedDetector) DetectFeeds(ctx context.Context, pageURL string) ([]*feedgen.DetectedFeed, error) {
	return d.DetectFeedsFn(ctx, pageURL)
}

func (d *FeedDetector) FetchFeed(ctx context.Context, feedURL string) (string, string, error) {
	return d.FetchFeedFn(ctx, feedURL)
}
