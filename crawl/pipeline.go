package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/pmarkowski/docmd"
	"github.com/pmarkowski/docmd/fs"
	"github.com/pmarkowski/docmd/markdown"
)

// Pipeline runs a whole conversion: crawl, optimize, map paths, rewrite
// links, and write the output tree. The link rewriting and layout stages
// are barriers; they start only once every frontier node is terminal.
type Pipeline struct {
	Crawler *Crawler
	Logger  *slog.Logger
}

// PreviewEntry is one line of a preview run: where a page would be written.
type PreviewEntry struct {
	URL  string
	Path string
}

// Run executes the full pipeline and returns the run summary. Only scope
// misconfiguration and unresolvable layout collisions are fatal; per-page
// failures are aggregated into the result.
func (p *Pipeline) Run(ctx context.Context, cfg *docmd.Config) (*docmd.Result, error) {
	start := time.Now()

	pages, frontier, scope, err := p.crawl(ctx, cfg)
	if err != nil {
		return nil, err
	}

	optimizer, err := selectOptimizer(cfg)
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		page.Markdown = applyTransforms(page.Markdown, optimizer, cfg)
	}

	urls := make([]string, 0, len(pages))
	for u := range pages {
		urls = append(urls, u)
	}
	paths, err := fs.BuildPathMap(scope, urls)
	if err != nil {
		return nil, err
	}

	for u, page := range pages {
		page.Markdown = markdown.RewriteLinks(page.Markdown, u, paths[u], paths)
		page.Hash = contentHash(page.Markdown)
	}

	writer := fs.NewWriter(cfg.OutputDir)
	var entries []fs.NavEntry
	for _, node := range frontier.Nodes() {
		page, ok := pages[node.URL]
		if !ok {
			continue
		}
		if err := writer.WritePage(page, paths[node.URL]); err != nil {
			return nil, err
		}
		entries = append(entries, fs.NavEntry{
			URL:   page.URL,
			Path:  paths[node.URL],
			Title: page.Title,
			Hash:  page.Hash,
			Depth: page.Depth,
		})
	}

	if cfg.GenerateNav {
		if err := writer.WriteIndexes(entries); err != nil {
			return nil, err
		}
		if err := writer.WriteSiteNavigation(scope.Root, entries, frontier.Failed()); err != nil {
			return nil, err
		}
	}

	return &docmd.Result{
		RunID:       uuid.NewString(),
		BaseURL:     scope.Root,
		OutputDir:   cfg.OutputDir,
		Converted:   len(pages),
		Failed:      frontier.Failed(),
		Directories: writer.DirCount(),
		Bytes:       writer.BytesWritten(),
		Duration:    time.Since(start),
	}, nil
}

// Preview crawls the site and reports the URL → local path assignment in
// traversal order without writing anything.
func (p *Pipeline) Preview(ctx context.Context, cfg *docmd.Config) ([]PreviewEntry, error) {
	pages, frontier, scope, err := p.crawl(ctx, cfg)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(pages))
	for u := range pages {
		urls = append(urls, u)
	}
	paths, err := fs.BuildPathMap(scope, urls)
	if err != nil {
		return nil, err
	}

	var entries []PreviewEntry
	for _, node := range frontier.Nodes() {
		if _, ok := pages[node.URL]; !ok {
			continue
		}
		entries = append(entries, PreviewEntry{URL: node.URL, Path: paths[node.URL]})
	}
	return entries, nil
}

func (p *Pipeline) crawl(ctx context.Context, cfg *docmd.Config) (map[string]*docmd.Page, *Frontier, *docmd.Scope, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	scope, err := docmd.NewScope(cfg.BaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	exclusions, err := docmd.NewExclusionSet(cfg.ExcludeURLs)
	if err != nil {
		return nil, nil, nil, err
	}
	if exclusions.Excluded(scope.Root) {
		return nil, nil, nil, docmd.Errorf(docmd.EINVALID, "root URL %q is excluded", scope.Root)
	}

	pages, frontier, err := p.Crawler.Crawl(ctx, cfg, scope, exclusions)
	if err != nil {
		return nil, nil, nil, err
	}
	return pages, frontier, scope, nil
}

// selectOptimizer resolves the configured profile. Raw mode disables the
// default profile but an explicitly requested one still runs.
func selectOptimizer(cfg *docmd.Config) (docmd.Optimizer, error) {
	if cfg.Profile != "" {
		return markdown.ProfileByName(cfg.Profile)
	}
	if cfg.Raw {
		return nil, nil
	}
	return &markdown.Standard{}, nil
}

// applyTransforms runs the per-page text passes in their fixed order:
// profile, forced fence style, empty-line reduction.
func applyTransforms(md string, optimizer docmd.Optimizer, cfg *docmd.Config) string {
	if optimizer != nil {
		md = optimizer.Apply(md)
	}
	if cfg.ForceFenceStyle {
		md = markdown.NormalizeFences(md)
	}
	if cfg.ReduceEmptyLines {
		md = markdown.ReduceEmptyLines(md)
	}
	return md
}

// contentHash returns the xxhash of the final page content.
func contentHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
