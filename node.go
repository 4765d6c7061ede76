package docmd

// NodeState is the lifecycle state of a discovered URL.
type NodeState int

// Node lifecycle: Discovered → Fetching → {Converted | Failed}.
const (
	StateDiscovered NodeState = iota
	StateFetching
	StateConverted
	StateFailed
)

// String returns the state name for logging and reports.
func (s NodeState) String() string {
	switch s {
	case StateDiscovered:
		return "discovered"
	case StateFetching:
		return "fetching"
	case StateConverted:
		return "converted"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// CrawlNode tracks one discovered URL through the crawl. Nodes are kept for
// the lifetime of the run so failures can be reported at the end.
type CrawlNode struct {
	URL    string // normalized
	Depth  int
	Parent string // normalized URL of the discovering page, "" for the root
	State  NodeState
	Reason string // failure reason, set only in StateFailed
}

// PathMap maps normalized URLs to local output paths (slash-separated,
// relative to the output root). It is complete and read-only by the time the
// link rewriter runs.
type PathMap map[string]string

// Lookup returns the local path for a normalized URL.
func (m PathMap) Lookup(normalized string) (string, bool) {
	p, ok := m[normalized]
	return p, ok
}
