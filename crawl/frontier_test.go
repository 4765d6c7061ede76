package crawl_test

import (
	"testing"

	"github.com/pmarkowski/docmd"
	"github.com/pmarkowski/docmd/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier(t *testing.T) {
	t.Parallel()

	t.Run("a URL enters the frontier at most once", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)

		assert.True(t, f.Add("https://example.com/docs", 0, ""))
		assert.False(t, f.Add("https://example.com/docs", 1, "https://example.com"))
		assert.Equal(t, 1, f.Len())

		// First discovery wins, including its depth.
		nodes := f.Nodes()
		require.Len(t, nodes, 1)
		assert.Equal(t, 0, nodes[0].Depth)
	})

	t.Run("groups nodes by depth for level traversal", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)
		f.Add("https://example.com/docs", 0, "")
		f.Add("https://example.com/docs/a", 1, "https://example.com/docs")
		f.Add("https://example.com/docs/b", 1, "https://example.com/docs")

		assert.Len(t, f.Level(0), 1)
		assert.Len(t, f.Level(1), 2)
		assert.Empty(t, f.Level(2))
	})

	t.Run("tracks node state transitions", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)
		f.Add("https://example.com/a", 0, "")
		f.Add("https://example.com/b", 0, "")

		f.MarkFetching("https://example.com/a")
		f.MarkConverted("https://example.com/a")
		f.MarkFailed("https://example.com/b", "HTTP 500")

		nodes := f.Nodes()
		require.Len(t, nodes, 2)
		assert.Equal(t, docmd.StateConverted, nodes[0].State)
		assert.Equal(t, docmd.StateFailed, nodes[1].State)

		failed := f.Failed()
		require.Len(t, failed, 1)
		assert.Equal(t, "https://example.com/b", failed[0].URL)
		assert.Equal(t, "HTTP 500", failed[0].Reason)
	})

	t.Run("dedup survives many URLs", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(10, 0.01) // deliberately undersized
		urls := make([]string, 500)
		for i := range urls {
			urls[i] = "https://example.com/page-" + string(rune('a'+i%26)) + "-" + string(rune('a'+i/26))
		}
		added := 0
		for _, u := range urls {
			if f.Add(u, 0, "") {
				added++
			}
		}
		// Every distinct URL must be admitted even when the Bloom filter
		// saturates; positives are confirmed against the exact map.
		distinct := make(map[string]bool)
		for _, u := range urls {
			distinct[u] = true
		}
		assert.Equal(t, len(distinct), added)
		assert.Equal(t, len(distinct), f.Len())
	})
}
