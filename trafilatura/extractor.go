// Package trafilatura extracts main article content from HTML,
// removing navigation, footers and other boilerplate. It backs the
// full-content feed mode.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/feedgen-project/feedgen"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements feedgen.ContentExtractor at compile time.
var _ feedgen.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the article's main content as
// plain text.
func (e *Extractor) Extract(rawHTML string) (*feedgen.Content, error) {
	if rawHTML == "" {
		return nil, feedgen.Errorf(feedgen.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, feedgen.Errorf(feedgen.EPARSE, "extracting content: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, feedgen.Errorf(feedgen.EPARSE, "rendering content: %v", err)
		}
	}

	return &feedgen.Content{
		Title: result.Metadata.Title,
		Text:  result.ContentText,
		HTML:  contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
