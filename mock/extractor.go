package mock

import "github.com/feedgen-project/feedgen"

var _ feedgen.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of feedgen.ArticleExtractor.
type ArticleExtractor struct {
	ParseMetadataFn   func(html, pageURL string) (*feedgen.FeedMetadata, error)
	ExtractArticlesFn func(html, baseURL string, maxItems int) ([]*feedgen.FeedItem, error)
}

func (e *ArticleExtractor) ParseMetadata(html, pageURL string) (*feedgen.FeedMetadata, error) {
	return e.ParseMetadataFn(html, pageURL)
}

func (e *ArticleExtractor) ExtractArticles(html, baseURL string, maxItems int) ([]*feedgen.FeedItem, error) {
	return e.ExtractArticlesFn(html, baseURL, maxItems)
}

var _ feedgen.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of feedgen.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*feedgen.Content, error)
}

func (e *ContentExtractor) Extract(html string) (*feedgen.Content, error) {
	return e.ExtractFn(html)
}
