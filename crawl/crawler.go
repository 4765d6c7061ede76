package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/pmarkowski/docmd"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the fetch worker pool size when none is configured.
const DefaultConcurrency = 10

// Crawler discovers and converts every in-scope page reachable from the
// root URL. Fetching runs with bounded concurrency inside each depth level;
// the next level starts only once every node of the current one has reached
// a terminal state, so max-depth cutoff is exact.
type Crawler struct {
	Fetcher   docmd.Fetcher
	Extractor docmd.Extractor
	Converter docmd.Converter
	Links     docmd.LinkExtractor
	Limiter   docmd.DomainLimiter
	Sitemaps  docmd.SitemapService
	Logger    *slog.Logger

	Concurrency int
	RetryDelays []time.Duration
}

// levelResult is the outcome of processing one frontier node.
type levelResult struct {
	url   string
	page  *docmd.Page
	links []string
}

// Crawl runs the breadth-first crawl and returns the converted pages keyed
// by normalized URL, plus the frontier holding every node's terminal state.
// Per-page failures never abort the crawl; they are recorded on the
// frontier.
func (c *Crawler) Crawl(ctx context.Context, cfg *docmd.Config, scope *docmd.Scope, exclusions *docmd.ExclusionSet) (map[string]*docmd.Page, *Frontier, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Add(scope.Root, 0, "")

	if cfg.UseSitemap && c.Sitemaps != nil {
		c.seedFromSitemaps(ctx, frontier, scope, exclusions, logger)
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	pages := make(map[string]*docmd.Page)

	for depth := 0; ; depth++ {
		nodes := frontier.Level(depth)
		if len(nodes) == 0 {
			break
		}
		logger.Info("crawl level", "depth", depth, "nodes", len(nodes))

		results := make([]levelResult, len(nodes))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		for i, node := range nodes {
			i, node := i, node
			g.Go(func() error {
				frontier.MarkFetching(node.URL)
				page, links, err := c.processNode(gctx, node)
				if err != nil {
					frontier.MarkFailed(node.URL, docmd.ErrorMessage(err))
					logger.Warn("page failed", "url", node.URL, "err", err)
					return nil
				}
				frontier.MarkConverted(node.URL)
				results[i] = levelResult{url: node.URL, page: page, links: links}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		followLinks := cfg.MaxDepth == 0 || depth < cfg.MaxDepth
		for _, r := range results {
			if r.page == nil {
				continue
			}
			pages[r.url] = r.page
			if !followLinks {
				continue
			}
			for _, raw := range r.links {
				normalized, err := docmd.NormalizeURL(raw)
				if err != nil {
					continue
				}
				if !scope.Contains(normalized) || exclusions.Excluded(normalized) {
					continue
				}
				frontier.Add(normalized, depth+1, r.url)
			}
		}
	}

	return pages, frontier, nil
}

// seedFromSitemaps adds in-scope sitemap URLs to the frontier at depth 0.
// Discovery failures only log; link-following still covers the site.
func (c *Crawler) seedFromSitemaps(ctx context.Context, frontier *Frontier, scope *docmd.Scope, exclusions *docmd.ExclusionSet, logger *slog.Logger) {
	urls, err := c.Sitemaps.DiscoverURLs(ctx, scope.Root)
	if err != nil {
		logger.Warn("sitemap seeding failed", "err", err)
		return
	}
	seeded := 0
	for _, raw := range urls {
		normalized, err := docmd.NormalizeURL(raw)
		if err != nil {
			continue
		}
		if !scope.Contains(normalized) || exclusions.Excluded(normalized) {
			continue
		}
		if frontier.Add(normalized, 0, scope.Root) {
			seeded++
		}
	}
	logger.Info("sitemap seeding", "discovered", len(urls), "seeded", seeded)
}

// processNode fetches one URL and runs the per-page transform chain:
// extract content, convert to markdown, collect outgoing links from the raw
// HTML.
func (c *Crawler) processNode(ctx context.Context, node *docmd.CrawlNode) (*docmd.Page, []string, error) {
	if c.Limiter != nil {
		u, err := url.Parse(node.URL)
		if err != nil {
			return nil, nil, docmd.Errorf(docmd.EINVALID, "invalid URL %q: %v", node.URL, err)
		}
		if err := c.Limiter.Wait(ctx, u.Host); err != nil {
			return nil, nil, err
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	result, err := FetchWithRetryDelays(ctx, node.URL, c.Fetcher.Fetch, nil, delays)
	if err != nil {
		return nil, nil, err
	}

	if ct := result.ContentType; ct != "" && !strings.Contains(ct, "text/html") && !strings.Contains(ct, "application/xhtml") {
		return nil, nil, docmd.Errorf(docmd.EINVALID, "unsupported content type %q", ct)
	}

	extracted, err := c.Extractor.Extract(result.Body)
	if err != nil {
		return nil, nil, err
	}

	markdown, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return nil, nil, err
	}

	// Links come from the raw HTML so navigation chrome still contributes
	// to discovery even though it is stripped from the content.
	links, err := c.Links.ExtractLinks(result.Body, node.URL)
	if err != nil {
		links = nil
	}

	page := &docmd.Page{
		URL:      node.URL,
		Depth:    node.Depth,
		Parent:   node.Parent,
		HTML:     result.Body,
		Title:    extracted.Title,
		Metadata: extracted.Metadata,
		Markdown: markdown,
	}
	return page, links, nil
}
