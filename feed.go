package feedgen

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/feeds"
)

// FeedItem represents a single article-like entry extracted from a page.
// Items are immutable once constructed and discarded after serialization.
type FeedItem struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"publishedAt,omitzero"`
	GUID        string    `json:"guid,omitempty"`
}

// Validate returns an error if the item contains invalid fields.
func (i *FeedItem) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return Errorf(EINVALID, "item title required")
	}
	u, err := url.Parse(i.Link)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Errorf(EINVALID, "item link must be an absolute URL: %q", i.Link)
	}
	return nil
}

// FeedMetadata describes the source page or channel of a generated feed.
type FeedMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// Feed is the assembled result of a generation call.
type Feed struct {
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Link          string      `json:"link"`
	Items         []*FeedItem `json:"items"`
	LastBuildDate time.Time   `json:"lastBuildDate,omitzero"`
}

// RSS renders the feed as an RSS 2.0 document.
func (f *Feed) RSS() (string, error) {
	out := &feeds.Feed{
		Title:       f.Title,
		Link:        &feeds.Link{Href: f.Link},
		Description: f.Description,
		Updated:     f.LastBuildDate,
	}
	for _, item := range f.Items {
		out.Items = append(out.Items, &feeds.Item{
			Title:       item.Title,
			Link:        &feeds.Link{Href: item.Link},
			Description: item.Description,
			Created:     item.PublishedAt,
			Id:          item.GUID,
		})
	}
	rss, err := out.ToRss()
	if err != nil {
		return "", Errorf(EINTERNAL, "rendering RSS: %v", err)
	}
	return rss, nil
}

// FeedType identifies a syndication feed format.
type FeedType string

// Recognized feed formats.
const (
	FeedTypeRSS  FeedType = "RSS"
	FeedTypeAtom FeedType = "Atom"
	FeedTypeJSON FeedType = "JSON"
	FeedTypeXML  FeedType = "XML"
)

// DetectedFeed describes a pre-existing syndication feed discovered on a
// page. It is consumed by the proxy-fetch path and not persisted.
type DetectedFeed struct {
	URL   string   `json:"url"`
	Title string   `json:"title"`
	Type  FeedType `json:"type"`
}

// FeedSource supplies items for URLs handled by a platform-specific API
// client (e.g. a video or photo platform) instead of generic extraction.
type FeedSource interface {
	// CanHandleURL reports whether this source knows how to serve the URL.
	CanHandleURL(url string) bool

	// Items fetches up to maxItems entries for the URL.
	Items(ctx context.Context, url string, maxItems int) ([]*FeedItem, error)
}
