// Command docmd converts a documentation website into a locally navigable
// tree of markdown files.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/pmarkowski/docmd"
	"github.com/pmarkowski/docmd/crawl"
	"github.com/pmarkowski/docmd/goquery"
	"github.com/pmarkowski/docmd/htmltomarkdown"
	docmdhttp "github.com/pmarkowski/docmd/http"
	"github.com/pmarkowski/docmd/readability"
	docmdslog "github.com/pmarkowski/docmd/slog"
	"github.com/pmarkowski/docmd/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Output           string        `short:"o" default:"docs_markdown" help:"Output directory"`
	MaxDepth         int           `short:"d" default:"0" help:"Maximum crawl depth (0 = unlimited)"`
	Delay            time.Duration `default:"1s" help:"Minimum delay between requests to one domain"`
	Exclude          []string      `short:"e" help:"URL prefixes excluded from the crawl"`
	Raw              bool          `help:"Skip the markdown optimization profile"`
	Optimization     string        `help:"Optimization profile: minimal, standard, enhanced, or token-optimized"`
	ForceFences      bool          `help:"Normalize all code fences to backticks"`
	ReduceEmptyLines bool          `negatable:"" default:"true" help:"Collapse runs of blank lines"`
	Readme           bool          `negatable:"" default:"true" help:"Generate README.md and NAVIGATION.md indexes"`
	Sitemap          bool          `help:"Seed the crawl from the site's sitemaps"`
	Preview          bool          `short:"p" help:"Print the URL to file mapping without writing"`
	Extractor        string        `default:"selector" enum:"selector,trafilatura,readability" help:"Content extraction engine"`
	Concurrency      int           `short:"c" default:"3" help:"Concurrent fetch limit"`
	Timeout          time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Verbose          bool          `short:"v" help:"Enable verbose logging"`
	URL              string        `arg:"" required:"" help:"Root documentation URL"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docmd"),
		kong.Description("Convert a documentation website into a local markdown tree"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	pipeline, closeFn := buildPipeline(cli, logger)
	defer closeFn()

	cfg := &docmd.Config{
		BaseURL:          cli.URL,
		OutputDir:        cli.Output,
		MaxDepth:         cli.MaxDepth,
		Delay:            cli.Delay,
		ExcludeURLs:      cli.Exclude,
		Raw:              cli.Raw,
		Profile:          cli.Optimization,
		ForceFenceStyle:  cli.ForceFences,
		ReduceEmptyLines: cli.ReduceEmptyLines,
		GenerateNav:      cli.Readme,
		UseSitemap:       cli.Sitemap,
		Concurrency:      cli.Concurrency,
		Timeout:          cli.Timeout,
	}

	if cli.Preview {
		return runPreview(ctx, pipeline, cfg, stdout)
	}
	return runConvert(ctx, pipeline, cfg, stdout)
}

// buildPipeline wires the pipeline from the CLI flags. The returned close
// function releases the fetcher's transport.
func buildPipeline(cli *CLI, logger *slog.Logger) (*crawl.Pipeline, func()) {
	fetcher := docmdslog.NewLoggingFetcher(
		docmdhttp.NewFetcher(docmdhttp.WithTimeout(cli.Timeout)),
		logger,
	)

	var extractor docmd.Extractor
	switch cli.Extractor {
	case "trafilatura":
		extractor = trafilatura.NewExtractor()
	case "readability":
		extractor = readability.NewExtractor()
	default:
		extractor = goquery.NewExtractor()
	}

	crawler := &crawl.Crawler{
		Fetcher:     fetcher,
		Extractor:   extractor,
		Converter:   htmltomarkdown.NewConverter(),
		Links:       goquery.NewLinkExtractor(),
		Limiter:     crawl.NewDomainLimiter(cli.Delay),
		Logger:      logger,
		Concurrency: cli.Concurrency,
	}
	if cli.Sitemap {
		crawler.Sitemaps = docmdslog.NewLoggingSitemapService(docmdhttp.NewSitemapService(nil), logger)
	}

	pipeline := &crawl.Pipeline{Crawler: crawler, Logger: logger}
	return pipeline, func() { _ = fetcher.Close() }
}

func runPreview(ctx context.Context, pipeline *crawl.Pipeline, cfg *docmd.Config, stdout io.Writer) error {
	entries, err := pipeline.Preview(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Preview: %d pages\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(stdout, "  %s -> %s\n", e.URL, e.Path)
	}
	return nil
}

func runConvert(ctx context.Context, pipeline *crawl.Pipeline, cfg *docmd.Config, stdout io.Writer) error {
	result, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Converted %d pages to %s (%d directories, %s) in %s\n",
		result.Converted,
		result.OutputDir,
		result.Directories,
		crawl.FormatBytes(result.Bytes),
		result.Duration.Round(time.Millisecond),
	)
	if len(result.Failed) > 0 {
		fmt.Fprintf(stdout, "Failed %d pages:\n", len(result.Failed))
		for _, f := range result.Failed {
			fmt.Fprintf(stdout, "  %s: %s\n", crawl.TruncateURL(f.URL, 80), f.Reason)
		}
	}
	return nil
}
