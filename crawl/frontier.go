// Package crawl implements the discovery frontier and the crawl pipeline:
// breadth-first traversal with depth limiting, bounded-concurrency fetching
// with retry and per-domain pacing, per-page transformation, and the
// post-crawl link rewriting and output stages.
package crawl

import (
	"sync"

	"github.com/pmarkowski/docmd"
	"github.com/pmarkowski/docmd/bloom"
)

// Frontier sizing defaults.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Frontier tracks every discovered URL through the crawl. Deduplication
// uses a Bloom filter as the fast path; a negative answer admits the URL
// immediately, a positive one is confirmed against the exact node map so a
// filter false positive can never drop a page. Nodes are grouped by depth
// to drive level-synchronous breadth-first traversal. Safe for concurrent
// use.
type Frontier struct {
	mu      sync.Mutex
	seen    *bloom.SeenSet
	nodes   map[string]*docmd.CrawlNode
	byDepth map[int][]*docmd.CrawlNode
	order   []*docmd.CrawlNode
}

// NewFrontier creates a Frontier sized for n expected URLs with the given
// Bloom filter false positive rate.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen:    bloom.NewSeenSet(n, fpRate),
		nodes:   make(map[string]*docmd.CrawlNode),
		byDepth: make(map[int][]*docmd.CrawlNode),
	}
}

// Add enqueues a normalized URL at the given depth. Returns false if the
// URL has already been discovered; a URL enters the frontier at most once
// for the lifetime of a crawl, keeping its first-discovery depth.
func (f *Frontier) Add(url string, depth int, parent string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.MaybeSeen(url) {
		if _, ok := f.nodes[url]; ok {
			return false
		}
	}
	f.seen.Add(url)

	node := &docmd.CrawlNode{
		URL:    url,
		Depth:  depth,
		Parent: parent,
		State:  docmd.StateDiscovered,
	}
	f.nodes[url] = node
	f.byDepth[depth] = append(f.byDepth[depth], node)
	f.order = append(f.order, node)
	return true
}

// Level returns the nodes discovered at the given depth. The slice is the
// frontier's own; callers must not mutate it structurally.
func (f *Frontier) Level(depth int) []*docmd.CrawlNode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byDepth[depth]
}

// MarkFetching transitions a node to the fetching state.
func (f *Frontier) MarkFetching(url string) {
	f.setState(url, docmd.StateFetching, "")
}

// MarkConverted transitions a node to its terminal converted state.
func (f *Frontier) MarkConverted(url string) {
	f.setState(url, docmd.StateConverted, "")
}

// MarkFailed transitions a node to its terminal failed state with a reason.
func (f *Frontier) MarkFailed(url string, reason string) {
	f.setState(url, docmd.StateFailed, reason)
}

func (f *Frontier) setState(url string, state docmd.NodeState, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if node, ok := f.nodes[url]; ok {
		node.State = state
		node.Reason = reason
	}
}

// Nodes returns every discovered node in discovery order.
func (f *Frontier) Nodes() []*docmd.CrawlNode {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*docmd.CrawlNode, len(f.order))
	copy(out, f.order)
	return out
}

// Len returns the number of discovered URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.nodes)
}

// Failed returns every failed node as a FailedURL, in discovery order.
func (f *Frontier) Failed() []docmd.FailedURL {
	f.mu.Lock()
	defer f.mu.Unlock()
	var failed []docmd.FailedURL
	for _, node := range f.order {
		if node.State == docmd.StateFailed {
			failed = append(failed, docmd.FailedURL{URL: node.URL, Reason: node.Reason})
		}
	}
	return failed
}
