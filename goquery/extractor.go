// Package goquery implements HTML content extraction and link discovery
// using CSS selectors.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pmarkowski/docmd"
)

// Ensure Extractor implements docmd.Extractor at compile time.
var _ docmd.Extractor = (*Extractor)(nil)

// chromeTags are removed wholesale before conversion.
var chromeTags = []string{"script", "style", "nav", "footer", "header"}

// chromeClassRe matches class names of navigation and page chrome.
var chromeClassRe = regexp.MustCompile(`(?i)(nav|menu|sidebar|footer|header|breadcrumb|advertisement|ads|social-share|related-posts)`)

// Extractor strips page chrome from raw HTML and pulls out the title and
// meta tags, leaving content ready for markdown conversion.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the HTML, records the title and every meta tag with a name
// or property attribute, removes chrome elements, and returns the remaining
// body content.
func (e *Extractor) Extract(html string) (*docmd.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docmd.Errorf(docmd.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &docmd.ExtractResult{
		Metadata: make(map[string]string),
	}

	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		name, ok := sel.Attr("name")
		if !ok {
			name, ok = sel.Attr("property")
		}
		content, hasContent := sel.Attr("content")
		if ok && name != "" && hasContent && content != "" {
			result.Metadata[name] = content
		}
	})

	result.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if result.Title == "" {
		result.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	for _, tag := range chromeTags {
		doc.Find(tag).Remove()
	}
	doc.Find("[class]").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		if chromeClassRe.MatchString(class) {
			sel.Remove()
		}
	})

	content, err := doc.Find("body").Html()
	if err != nil {
		return nil, docmd.Errorf(docmd.EINVALID, "failed to render content: %v", err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, docmd.Errorf(docmd.EINVALID, "no content after chrome removal")
	}
	result.ContentHTML = content

	return result, nil
}
