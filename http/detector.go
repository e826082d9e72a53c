package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/beevik/etree"
	"github.com/feedgen-project/feedgen"
)

// commonFeedPaths are probed in order when a page declares no alternate
// feeds in its markup. The first hit wins.
var commonFeedPaths = []string{
	"/feed",
	"/rss",
	"/atom.xml",
	"/rss.xml",
	"/feed.xml",
	"/feeds/all.atom.xml",
	"/rss/index.xml",
	"/feed/index.xml",
}

// feedContentTypes are the content types recognized as syndication
// feeds when inspecting link elements and probe responses.
var feedContentTypes = []string{
	"application/rss+xml",
	"application/atom+xml",
	"application/xml",
	"text/xml",
	"application/json",
}

// DefaultProbeTimeout bounds a single well-known-path probe.
const DefaultProbeTimeout = 10 * time.Second

var _ feedgen.FeedDetector = (*Detector)(nil)

// Detector discovers pre-existing syndication feeds for a page and
// fetches them for proxying. Detection runs two stages: alternate-feed
// links declared in the page markup, then well-known feed paths probed
// against the page origin. Stage failures degrade to no results.
type Detector struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// NewDetector creates a Detector.
func NewDetector(userAgent string, logger *slog.Logger) *Detector {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{
		client:    &http.Client{Timeout: DefaultFetchTimeout},
		userAgent: userAgent,
		logger:    logger,
	}
}

// DetectFeeds returns the feeds advertised by the page, or the first
// feed found at a well-known path when the page advertises none.
func (d *Detector) DetectFeeds(ctx context.Context, pageURL string) ([]*feedgen.DetectedFeed, error) {
	feeds := d.detectFromHTML(ctx, pageURL)
	if len(feeds) == 0 {
		feeds = d.detectFromCommonPaths(ctx, pageURL)
	}
	return feeds, nil
}

// FetchFeed retrieves an existing feed and returns its content and
// content type. When the server reports a generic content type the feed
// document itself is sniffed for a better one.
func (d *Detector) FetchFeed(ctx context.Context, feedURL string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return "", "", feedgen.Errorf(feedgen.EINVALID, "building request for %s: %v", feedURL, err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", "", feedgen.Errorf(feedgen.EFETCH, "fetching feed %s: %v", feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", "", feedgen.Errorf(feedgen.EFETCH, "HTTP %d for feed %s", resp.StatusCode, feedURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", feedgen.Errorf(feedgen.EFETCH, "reading feed %s: %v", feedURL, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isFeedContentType(contentType) {
		contentType = sniffFeedContentType(string(body))
	}

	return string(body), contentType, nil
}

// detectFromHTML fetches the page and collects link[rel=alternate]
// elements declaring a feed content type.
func (d *Detector) detectFromHTML(ctx context.Context, pageURL string) []*feedgen.DetectedFeed {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Debug("feed detection page fetch failed", "url", pageURL, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var feeds []*feedgen.DetectedFeed
	doc.Find(`link[rel="alternate"]`).Each(func(_ int, sel *goquery.Selection) {
		linkType := strings.ToLower(sel.AttrOr("type", ""))
		href := sel.AttrOr("href", "")
		if href == "" || !isFeedContentType(linkType) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}

		title := sel.AttrOr("title", "")
		if title == "" {
			title = "untitled feed"
		}

		feeds = append(feeds, &feedgen.DetectedFeed{
			URL:   base.ResolveReference(ref).String(),
			Title: title,
			Type:  feedTypeFromContentType(linkType),
		})
	})

	return feeds
}

// detectFromCommonPaths probes well-known feed locations on the page's
// origin, stopping at the first one that responds like a feed.
func (d *Detector) detectFromCommonPaths(ctx context.Context, pageURL string) []*feedgen.DetectedFeed {
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		return nil
	}
	origin := base.Scheme + "://" + base.Host

	for _, path := range commonFeedPaths {
		feedURL := origin + path
		if !d.feedExists(ctx, feedURL) {
			continue
		}
		feedType := feedTypeFromPath(path)
		return []*feedgen.DetectedFeed{{
			URL:   feedURL,
			Title: base.Host + " - " + string(feedType),
			Type:  feedType,
		}}
	}

	return nil
}

// feedExists probes a candidate URL with a HEAD request.
func (d *Detector) feedExists(ctx context.Context, feedURL string) bool {
	probeCtx, cancel := context.WithTimeout(ctx, DefaultProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, feedURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return false
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	return isFeedContentType(contentType) || strings.Contains(contentType, "xml")
}

func isFeedContentType(contentType string) bool {
	for _, ft := range feedContentTypes {
		if strings.Contains(contentType, ft) {
			return true
		}
	}
	return false
}

func feedTypeFromContentType(contentType string) feedgen.FeedType {
	switch {
	case strings.Contains(contentType, "rss"):
		return feedgen.FeedTypeRSS
	case strings.Contains(contentType, "atom"):
		return feedgen.FeedTypeAtom
	case strings.Contains(contentType, "json"):
		return feedgen.FeedTypeJSON
	default:
		return feedgen.FeedTypeXML
	}
}

func feedTypeFromPath(path string) feedgen.FeedType {
	path = strings.ToLower(path)
	switch {
	case strings.Contains(path, "atom"):
		return feedgen.FeedTypeAtom
	case strings.Contains(path, "json"):
		return feedgen.FeedTypeJSON
	default:
		return feedgen.FeedTypeRSS
	}
}

// sniffFeedContentType inspects a feed document's root element when the
// server reported a generic content type.
func sniffFeedContentType(content string) string {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(content); err != nil {
		return "application/xml"
	}
	root := doc.Root()
	if root == nil {
		return "application/xml"
	}
	switch root.Tag {
	case "rss":
		return "application/rss+xml"
	case "feed":
		return "application/atom+xml"
	default:
		return "application/xml"
	}
}
