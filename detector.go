package feedgen

import "context"

// FeedDetector discovers pre-existing syndication feeds for a page and
// fetches them for proxying.
type FeedDetector interface {
	// DetectFeeds inspects the page's markup for alternate-feed links
	// and, failing that, probes a fixed list of well-known feed paths
	// against the page's origin. Fetch failures during a detection stage
	// degrade to "no feeds found" for that stage.
	DetectFeeds(ctx context.Context, pageURL string) ([]*DetectedFeed, error)

	// FetchFeed retrieves an existing feed for proxying and returns its
	// content and content type. Network failures return an EFETCH error.
	FetchFeed(ctx context.Context, feedURL string) (content, contentType string, err error)
}
