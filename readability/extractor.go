// Package readability provides content extraction backed by go-readability.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/pmarkowski/docmd"
)

// Ensure Extractor implements docmd.Extractor at compile time.
var _ docmd.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*docmd.ExtractResult, error) {
	if rawHTML == "" {
		return nil, docmd.Errorf(docmd.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, docmd.Errorf(docmd.EINVALID, "content extraction: %v", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, docmd.Errorf(docmd.EINVALID, "no content extracted")
	}

	metadata := make(map[string]string)
	if article.Excerpt != "" {
		metadata["description"] = article.Excerpt
	}
	if article.Byline != "" {
		metadata["author"] = article.Byline
	}
	if article.SiteName != "" {
		metadata["sitename"] = article.SiteName
	}

	return &docmd.ExtractResult{
		Title:       article.Title,
		Metadata:    metadata,
		ContentHTML: article.Content,
	}, nil
}
