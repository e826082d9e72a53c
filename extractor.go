package feedgen

// ArticleExtractor turns raw HTML into feed metadata and article items.
type ArticleExtractor interface {
	// ParseMetadata extracts the page title, description and canonical
	// link. The title defaults to "untitled" when the document has no
	// title element; the description falls back to the first paragraph.
	ParseMetadata(html, pageURL string) (*FeedMetadata, error)

	// ExtractArticles recovers up to maxItems article-like entries from
	// the page, deduplicated by title and in document order.
	// Returns an EPARSE error if the HTML cannot be processed.
	ExtractArticles(html, baseURL string, maxItems int) ([]*FeedItem, error)
}

// Content holds the main content extracted from a single article page.
type Content struct {
	// Title is the article title from page metadata.
	Title string

	// Text is the main content as plain text, boilerplate removed.
	Text string

	// HTML is the main content with its markup preserved. May be empty
	// when the extractor produces text only.
	HTML string
}

// ContentExtractor extracts main article content from HTML, removing
// boilerplate such as navigation, footers and ads. Used to enrich item
// descriptions in full-content mode.
type ContentExtractor interface {
	Extract(html string) (*Content, error)
}
