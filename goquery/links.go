package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pmarkowski/docmd"
)

// Ensure LinkExtractor implements docmd.LinkExtractor at compile time.
var _ docmd.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor discovers hyperlink targets in raw HTML. Targets are
// resolved to absolute form and deduplicated in document order; no scope or
// exclusion filtering happens here.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns the absolute form of every anchor href in the HTML,
// in document order with duplicates removed. Non-HTTP schemes and
// fragment-only links are skipped.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docmd.Errorf(docmd.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docmd.Errorf(docmd.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""
		abs := resolved.String()

		if !seen[abs] {
			seen[abs] = true
			links = append(links, abs)
		}
	})

	return links, nil
}

// isNonHTTPLink reports whether an href uses a scheme that cannot be
// crawled.
func isNonHTTPLink(href string) bool {
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:", "ftp:"} {
		if strings.HasPrefix(strings.ToLower(href), prefix) {
			return true
		}
	}
	return false
}
