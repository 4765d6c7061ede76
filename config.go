package docmd

import "time"

// Optimization profile names.
const (
	ProfileMinimal        = "minimal"
	ProfileStandard       = "standard"
	ProfileEnhanced       = "enhanced"
	ProfileTokenOptimized = "token-optimized"
)

// Config is the configuration surface consumed by the crawl pipeline.
type Config struct {
	BaseURL   string
	OutputDir string

	// MaxDepth limits crawl depth; 0 means unlimited. A page discovered at
	// depth == MaxDepth is still converted but contributes no children.
	MaxDepth int

	// Delay is the politeness floor between requests to the same domain,
	// applied per worker when Concurrency > 1.
	Delay time.Duration

	// ExcludeURLs are URL or URL-prefix patterns dropped from the frontier.
	ExcludeURLs []string

	// Raw bypasses the optimization profile. Orthogonal to Profile: a
	// profile explicitly requested by the caller still runs in raw mode.
	Raw bool

	// Profile is one of the Profile* names; "" selects the default
	// (ProfileStandard, or none in raw mode).
	Profile string

	// ForceFenceStyle normalizes all existing fence markers to ``` even in
	// raw mode.
	ForceFenceStyle bool

	// ReduceEmptyLines collapses runs of blank lines to one as the final
	// step, regardless of profile or raw mode. Defaults to on.
	ReduceEmptyLines bool

	// GenerateNav controls README.md / NAVIGATION.md generation.
	GenerateNav bool

	// UseSitemap seeds the frontier from the site's sitemaps before
	// link-following begins.
	UseSitemap bool

	Concurrency int
	Timeout     time.Duration
}

// Validate returns EINVALID if the configuration cannot drive a crawl.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return Errorf(EINVALID, "base URL required")
	}
	if c.OutputDir == "" {
		return Errorf(EINVALID, "output directory required")
	}
	if c.MaxDepth < 0 {
		return Errorf(EINVALID, "max depth must be >= 0")
	}
	switch c.Profile {
	case "", ProfileMinimal, ProfileStandard, ProfileEnhanced, ProfileTokenOptimized:
	default:
		return Errorf(EINVALID, "unknown optimization profile %q", c.Profile)
	}
	return nil
}

// FailedURL records a page that reached the Failed state.
type FailedURL struct {
	URL    string
	Reason string
}

// Result is the summary surface produced by a completed run.
type Result struct {
	RunID       string
	BaseURL     string
	OutputDir   string
	Converted   int
	Failed      []FailedURL
	Directories int
	Bytes       int
	Duration    time.Duration
}
