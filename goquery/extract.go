package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/feedgen-project/feedgen"
)

// cardSelectors identify card-like containers on utility-CSS sites
// where articles are not marked up with headings.
var cardSelectors = []string{
	`[class*="content"]`,
	`[class*="card"]`,
	`[class*="cursor-pointer"]`,
	"article",
	`[class*="item"]`,
}

// ExtractArticles recovers up to maxItems article-like entries from the
// page. Three strategies run in order, each only filling the budget the
// previous ones left: headings that wrap links, card-like containers,
// and long text blocks with a nested link. Results are deduplicated by
// title, keeping the first occurrence, and returned in document order.
// A non-positive budget yields no items; callers choose their own
// default.
func (e *Extractor) ExtractArticles(html, baseURL string, maxItems int) ([]*feedgen.FeedItem, error) {
	if maxItems <= 0 {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, feedgen.Errorf(feedgen.EPARSE, "parsing HTML: %v", err)
	}

	items := e.fromHeadingsWithLinks(doc, baseURL, maxItems)

	if len(items) < maxItems {
		items = append(items, e.fromCardElements(doc, baseURL, maxItems-len(items))...)
	}

	if len(items) < maxItems {
		items = append(items, e.fromContentBlocks(doc, baseURL, maxItems-len(items))...)
	}

	items = deduplicateByTitle(items)

	if len(items) > maxItems {
		items = items[:maxItems]
	}
	return items, nil
}

// fromHeadingsWithLinks extracts articles from heading tags that wrap a
// link, the structure most blogs and news sites use for listings.
func (e *Extractor) fromHeadingsWithLinks(doc *goquery.Document, baseURL string, maxItems int) []*feedgen.FeedItem {
	var items []*feedgen.FeedItem

	headings := doc.Find("h1, h2, h3, h4, h5, h6")
	headings.EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= maxItems*2 || len(items) >= maxItems {
			return false
		}

		link := sel.Find("a[href]").First()
		if link.Length() == 0 {
			return true
		}
		href, _ := link.Attr("href")
		if href == "" {
			return true
		}

		title := strings.TrimSpace(sel.Text())
		resolved := e.normalizers.Normalize(href, baseURL)
		if title == "" || resolved == "" {
			return true
		}

		items = append(items, &feedgen.FeedItem{
			Title:       title,
			Description: e.descriptionFor(sel),
			Link:        resolved,
			PublishedAt: e.publishedAt(sel),
			GUID:        fmt.Sprintf("%s#heading-%d", baseURL, i),
		})
		return true
	})

	return items
}

// fromCardElements extracts articles from card-like containers. A card
// without a link is still included when its title carries enough
// information, with the page itself as the link.
func (e *Extractor) fromCardElements(doc *goquery.Document, baseURL string, maxItems int) []*feedgen.FeedItem {
	var items []*feedgen.FeedItem

	for _, selector := range cardSelectors {
		if len(items) >= maxItems {
			break
		}

		doc.Find(selector).EachWithBreak(func(i int, card *goquery.Selection) bool {
			if i >= maxItems*2 || len(items) >= maxItems {
				return false
			}

			text := strings.TrimSpace(card.Text())
			if len([]rune(text)) < 10 {
				return true
			}

			title := e.titleFromCard(card, text)
			link := e.linkFromCard(card, baseURL)

			if title == "" || (link == "" && len([]rune(title)) <= 5) {
				return true
			}
			if link == "" {
				link = baseURL
			}

			items = append(items, &feedgen.FeedItem{
				Title:       title,
				Description: ellipsize(text, 200),
				Link:        link,
				PublishedAt: e.publishedAt(card),
				GUID:        fmt.Sprintf("%s#card-%d", baseURL, len(items)),
			})
			return true
		})
	}

	return items
}

// fromContentBlocks is the last-resort strategy: long paragraph or div
// text that contains a link somewhere inside.
func (e *Extractor) fromContentBlocks(doc *goquery.Document, baseURL string, maxItems int) []*feedgen.FeedItem {
	var items []*feedgen.FeedItem

	doc.Find("p, div").EachWithBreak(func(i int, block *goquery.Selection) bool {
		if i >= maxItems*3 || len(items) >= maxItems {
			return false
		}

		text := strings.TrimSpace(block.Text())
		if len([]rune(text)) < 30 {
			return true
		}

		link := block.Find("a[href]").First()
		if link.Length() == 0 {
			return true
		}
		href, _ := link.Attr("href")
		if href == "" {
			return true
		}

		title := truncateRunes(firstLine(text), 100)
		items = append(items, &feedgen.FeedItem{
			Title:       title,
			Description: ellipsize(text, 200),
			Link:        e.normalizers.Normalize(href, baseURL),
			PublishedAt: e.publishedAt(block),
			GUID:        fmt.Sprintf("%s#content-%d", baseURL, i),
		})
		return true
	})

	return items
}

// titleFromCard picks a title from a card: a heading if present, then
// the first reasonably sized line, then a truncated prefix of the text.
func (e *Extractor) titleFromCard(card *goquery.Selection, fullText string) string {
	if heading := card.Find("h1, h2, h3, h4, h5, h6").First(); heading.Length() > 0 {
		return strings.TrimSpace(heading.Text())
	}

	for _, line := range strings.Split(fullText, "\n") {
		line = strings.TrimSpace(line)
		if n := len([]rune(line)); n > 5 && n < 200 {
			return line
		}
	}

	return ellipsize(fullText, 100)
}

// linkFromCard finds a card's target: a nested anchor first, then the
// data attributes clickable-card frameworks use.
func (e *Extractor) linkFromCard(card *goquery.Selection, baseURL string) string {
	if link := card.Find("a[href]").First(); link.Length() > 0 {
		if href, _ := link.Attr("href"); href != "" {
			return e.normalizers.Normalize(href, baseURL)
		}
	}

	for _, attr := range []string{"data-href", "data-url", "data-link"} {
		if href, ok := card.Attr(attr); ok && href != "" {
			return e.normalizers.Normalize(href, baseURL)
		}
	}

	return ""
}

// descriptionFor finds descriptive text near a heading: the following
// paragraph or div, or the remainder of the parent's text.
func (e *Extractor) descriptionFor(sel *goquery.Selection) string {
	if next := sel.NextAllFiltered("p, div").First(); next.Length() > 0 {
		if text := strings.TrimSpace(next.Text()); text != "" {
			return ellipsize(text, 200)
		}
	}

	parent := sel.Parent()
	if parent.Length() == 0 {
		return ""
	}
	parentText := strings.TrimSpace(parent.Text())
	ownText := strings.TrimSpace(sel.Text())
	if rest := strings.TrimSpace(strings.TrimPrefix(parentText, ownText)); rest != parentText {
		return ellipsize(rest, 200)
	}
	return ""
}

// deduplicateByTitle removes items whose trimmed, lowercased title was
// already seen, keeping the first occurrence. Titles are compared by
// hash so long titles stay cheap to track.
func deduplicateByTitle(items []*feedgen.FeedItem) []*feedgen.FeedItem {
	seen := make(map[uint64]struct{}, len(items))
	unique := items[:0:0]

	for _, item := range items {
		normalized := strings.ToLower(strings.TrimSpace(item.Title))
		if normalized == "" {
			continue
		}
		key := xxhash.Sum64String(normalized)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, item)
	}

	return unique
}

// firstLine returns the text up to the first newline.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
