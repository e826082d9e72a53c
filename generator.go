package feedgen

import (
	"context"
	"log/slog"
	"net/url"
	"time"
)

// DefaultMaxItems bounds the item list when the caller does not specify
// a limit.
const DefaultMaxItems = 20

// GenerateOptions tunes a single generation call.
type GenerateOptions struct {
	// MaxItems bounds the returned item list. Defaults to DefaultMaxItems.
	MaxItems int

	// FullContent replaces item descriptions with the main content of
	// each linked article page. Best-effort: enrichment failures keep
	// the original description.
	FullContent bool
}

// FeedGenerator routes a target URL to the right source and assembles
// the final feed. Platform-specific sources are consulted first; pages
// they cannot handle go through the generic extraction pipeline.
type FeedGenerator struct {
	Fetcher   Fetcher
	Extractor ArticleExtractor
	Detector  FeedDetector

	// Sources are platform-specific feed sources checked in order
	// before falling back to generic extraction.
	Sources []FeedSource

	// Content enriches item descriptions in full-content mode.
	// Optional; nil disables the mode.
	Content ContentExtractor

	Logger *slog.Logger

	// Now supplies the feed build timestamp. Defaults to time.Now.
	Now func() time.Time
}

// NewFeedGenerator creates a FeedGenerator over the given pipeline
// components.
func NewFeedGenerator(fetcher Fetcher, extractor ArticleExtractor, detector FeedDetector, logger *slog.Logger) *FeedGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedGenerator{
		Fetcher:   fetcher,
		Extractor: extractor,
		Detector:  detector,
		Logger:    logger,
		Now:       time.Now,
	}
}

// Generate builds a feed for the given URL.
// Returns EINVALID for malformed URLs, EFETCH when the page cannot be
// retrieved and EPARSE when extraction fails.
func (g *FeedGenerator) Generate(ctx context.Context, pageURL string, opts GenerateOptions) (*Feed, error) {
	if opts.MaxItems <= 0 {
		opts.MaxItems = DefaultMaxItems
	}

	u, err := url.Parse(pageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, Errorf(EINVALID, "invalid URL: %q", pageURL)
	}

	for _, source := range g.Sources {
		if !source.CanHandleURL(pageURL) {
			continue
		}
		feed, err := g.generateFromSource(ctx, source, pageURL, u.Host, opts.MaxItems)
		if err == nil {
			return feed, nil
		}
		// Platform API failures fall back to generic extraction.
		g.Logger.Warn("platform source failed, falling back to extraction",
			"url", pageURL,
			"error", err,
		)
		break
	}

	return g.generateFromPage(ctx, pageURL, opts)
}

// DetectExistingFeeds discovers syndication feeds already advertised or
// conventionally hosted by the page.
func (g *FeedGenerator) DetectExistingFeeds(ctx context.Context, pageURL string) ([]*DetectedFeed, error) {
	return g.Detector.DetectFeeds(ctx, pageURL)
}

// FetchExistingFeed retrieves an existing feed for proxying.
func (g *FeedGenerator) FetchExistingFeed(ctx context.Context, feedURL string) (string, string, error) {
	return g.Detector.FetchFeed(ctx, feedURL)
}

func (g *FeedGenerator) generateFromSource(ctx context.Context, source FeedSource, pageURL, host string, maxItems int) (*Feed, error) {
	items, err := source.Items(ctx, pageURL, maxItems)
	if err != nil {
		return nil, err
	}
	return &Feed{
		Title:         host,
		Description:   "Feed for " + pageURL,
		Link:          pageURL,
		Items:         items,
		LastBuildDate: g.Now(),
	}, nil
}

func (g *FeedGenerator) generateFromPage(ctx context.Context, pageURL string, opts GenerateOptions) (*Feed, error) {
	html, err := g.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	metadata, err := g.Extractor.ParseMetadata(html, pageURL)
	if err != nil {
		return nil, err
	}

	items, err := g.Extractor.ExtractArticles(html, pageURL, opts.MaxItems)
	if err != nil {
		return nil, err
	}

	if opts.FullContent && g.Content != nil {
		g.enrichItems(ctx, items)
	}

	return &Feed{
		Title:         metadata.Title,
		Description:   metadata.Description,
		Link:          metadata.Link,
		Items:         items,
		LastBuildDate: g.Now(),
	}, nil
}

// enrichItems replaces each item description with the extracted main
// content of the linked page. Fetch and extraction failures are logged
// and leave the item untouched.
func (g *FeedGenerator) enrichItems(ctx context.Context, items []*FeedItem) {
	for _, item := range items {
		html, err := g.Fetcher.Fetch(ctx, item.Link)
		if err != nil {
			g.Logger.Warn("full-content fetch failed", "link", item.Link, "error", err)
			continue
		}
		content, err := g.Content.Extract(html)
		if err != nil || (content.HTML == "" && content.Text == "") {
			g.Logger.Warn("full-content extraction failed", "link", item.Link, "error", err)
			continue
		}
		if content.HTML != "" {
			item.Description = content.HTML
		} else {
			item.Description = content.Text
		}
	}
}
