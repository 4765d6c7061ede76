package docmd

import "context"

// Page is the record for a single crawled page. It is owned by the pipeline
// and mutated in place as it moves through extraction, conversion, fence
// reconstruction and optimization.
type Page struct {
	URL      string // normalized
	Depth    int
	Parent   string // normalized URL of the discovering page, "" for the root
	HTML     string // raw fetched body
	Title    string
	Metadata map[string]string // meta-tag name/property → content
	Markdown string
	Hash     string // xxhash of the final markdown
}

// FetchResult is the outcome of a successful HTTP GET.
type FetchResult struct {
	StatusCode  int
	Body        string
	ContentType string
}

// Fetcher retrieves raw page content from URLs. A terminal failure must be
// reported as an error (EUNAVAILABLE), never as a panic; retry policy is the
// caller's concern.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases transport resources.
	Close() error
}

// ExtractResult holds the content extracted from one HTML page.
type ExtractResult struct {
	// Title is the document title: <title> tag, falling back to the first
	// heading.
	Title string

	// Metadata maps every <meta> name or property attribute to its content.
	Metadata map[string]string

	// ContentHTML is the page content with chrome (scripts, styles,
	// navigation, footers) removed.
	ContentHTML string
}

// Extractor strips non-content elements from raw HTML and pulls out the
// title and meta tags.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts clean HTML to markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// LinkExtractor finds hyperlink targets in raw HTML, resolved against the
// page URL to absolute form. No scope or exclusion filtering is applied.
type LinkExtractor interface {
	ExtractLinks(html string, baseURL string) ([]string, error)
}

// DomainLimiter provides per-domain request pacing.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// SitemapService discovers URLs from a site's sitemaps, for optional
// frontier seeding before link-following begins.
type SitemapService interface {
	// DiscoverURLs finds URLs from robots.txt sitemap directives, falling
	// back to /sitemap.xml. Sitemap indexes are resolved recursively.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}

// Optimizer is a named, deterministic markdown transform applied uniformly
// to every converted page in a run.
type Optimizer interface {
	Name() string
	Apply(markdown string) string
}
