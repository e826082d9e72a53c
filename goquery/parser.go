// Package goquery implements HTML parsing and article extraction using
// CSS selectors.
package goquery

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/feedgen-project/feedgen"
)

// untitled is the fallback page title.
const untitled = "untitled"

var _ feedgen.ArticleExtractor = (*Extractor)(nil)

// Extractor parses listing pages into feed metadata and article items.
// Relative links are resolved through the injected normalizer registry.
type Extractor struct {
	normalizers feedgen.NormalizerRegistry
	now         func() time.Time
}

// New creates an Extractor that resolves links via normalizers.
func New(normalizers feedgen.NormalizerRegistry) *Extractor {
	return &Extractor{
		normalizers: normalizers,
		now:         time.Now,
	}
}

// ParseMetadata extracts the page title, description and canonical link.
// The title falls back to "untitled" and the description falls back to
// the first paragraph when the usual sources are missing.
func (e *Extractor) ParseMetadata(html, pageURL string) (*feedgen.FeedMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, feedgen.Errorf(feedgen.EPARSE, "parsing HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = untitled
	}

	description := ""
	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok && strings.TrimSpace(content) != "" {
		description = strings.TrimSpace(content)
	} else if p := strings.TrimSpace(doc.Find("p").First().Text()); p != "" {
		description = truncateRunes(p, 200) + "..."
	}

	return &feedgen.FeedMetadata{
		Title:       title,
		Description: description,
		Link:        pageURL,
	}, nil
}

// publishedAt recovers a timestamp from a time element inside or around
// the selection, falling back to the current time.
func (e *Extractor) publishedAt(sel *goquery.Selection) time.Time {
	t := sel.Find("time[datetime]").First()
	if t.Length() == 0 {
		t = sel.Parent().Find("time[datetime]").First()
	}
	if raw, ok := t.Attr("datetime"); ok {
		if ts, err := dateparse.ParseAny(raw); err == nil {
			return ts
		}
	}
	return e.now()
}

// truncateRunes shortens s to at most n runes, so multi-byte text is
// never split mid-character.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// ellipsize shortens s to n runes and appends "..." only when something
// was cut off.
func ellipsize(s string, n int) string {
	if len([]rune(s)) > n {
		return truncateRunes(s, n) + "..."
	}
	return s
}
