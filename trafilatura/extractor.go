// Package trafilatura provides content extraction backed by go-trafilatura,
// for pages where selector-based chrome removal leaves too much noise.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/pmarkowski/docmd"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docmd.Extractor at compile time.
var _ docmd.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, docmd.Errorf(docmd.EINVALID, "content extraction: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(contentHTML) == "" {
		return nil, docmd.Errorf(docmd.EINVALID, "no content extracted")
	}

	metadata := make(map[string]string)
	if result.Metadata.Description != "" {
		metadata["description"] = result.Metadata.Description
	}
	if result.Metadata.Author != "" {
		metadata["author"] = result.Metadata.Author
	}
	if result.Metadata.Sitename != "" {
		metadata["sitename"] = result.Metadata.Sitename
	}

	return &docmd.ExtractResult{
		Title:       result.Metadata.Title,
		Metadata:    metadata,
		ContentHTML: contentHTML,
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
