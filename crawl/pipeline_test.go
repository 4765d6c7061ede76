package crawl_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pmarkowski/docmd"
	"github.com/pmarkowski/docmd/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes the tree with rewritten links and navigation", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(map[string]string{
			"https://example.com/docs":   "Welcome. See [A](/docs/a) and [out](https://other.com/x).",
			"https://example.com/docs/a": "Back to [home](/docs).",
		}, map[string][]string{
			"https://example.com/docs": {"https://example.com/docs/a"},
		})
		dir := t.TempDir()
		p := &crawl.Pipeline{Crawler: site.crawler()}

		result, err := p.Run(context.Background(), &docmd.Config{
			BaseURL:     "https://example.com/docs",
			OutputDir:   dir,
			GenerateNav: true,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.RunID)
		assert.Equal(t, 2, result.Converted)
		assert.Empty(t, result.Failed)
		assert.Positive(t, result.Bytes)

		index, err := os.ReadFile(filepath.Join(dir, "index.md"))
		require.NoError(t, err)
		assert.Contains(t, string(index), "<!-- source: https://example.com/docs -->")
		assert.Contains(t, string(index), "[A](a.md)")
		assert.Contains(t, string(index), "[out](https://other.com/x)")

		child, err := os.ReadFile(filepath.Join(dir, "a.md"))
		require.NoError(t, err)
		assert.Contains(t, string(child), "[home](index.md)")

		_, err = os.Stat(filepath.Join(dir, "README.md"))
		require.NoError(t, err)
		nav, err := os.ReadFile(filepath.Join(dir, "NAVIGATION.md"))
		require.NoError(t, err)
		assert.Contains(t, string(nav), "- Pages: 2")
	})

	t.Run("raw mode skips the optimization profile", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(map[string]string{
			"https://example.com/docs": "~~~\nx = 1\n~~~",
		}, nil)
		dir := t.TempDir()
		p := &crawl.Pipeline{Crawler: site.crawler()}

		_, err := p.Run(context.Background(), &docmd.Config{
			BaseURL:   "https://example.com/docs",
			OutputDir: dir,
			Raw:       true,
		})

		require.NoError(t, err)
		index, err := os.ReadFile(filepath.Join(dir, "index.md"))
		require.NoError(t, err)
		assert.Contains(t, string(index), "~~~\nx = 1\n~~~")
	})

	t.Run("an explicit profile still runs in raw mode", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(map[string]string{
			"https://example.com/docs": "~~~\nimport os\n~~~",
		}, nil)
		dir := t.TempDir()
		p := &crawl.Pipeline{Crawler: site.crawler()}

		_, err := p.Run(context.Background(), &docmd.Config{
			BaseURL:   "https://example.com/docs",
			OutputDir: dir,
			Raw:       true,
			Profile:   docmd.ProfileStandard,
		})

		require.NoError(t, err)
		index, err := os.ReadFile(filepath.Join(dir, "index.md"))
		require.NoError(t, err)
		assert.Contains(t, string(index), "```python")
	})

	t.Run("failed pages appear in the result, not the tree", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(map[string]string{
			"https://example.com/docs": "See [missing](/docs/missing).",
		}, map[string][]string{
			"https://example.com/docs": {"https://example.com/docs/missing"},
		})
		dir := t.TempDir()
		p := &crawl.Pipeline{Crawler: site.crawler()}

		result, err := p.Run(context.Background(), &docmd.Config{
			BaseURL:   "https://example.com/docs",
			OutputDir: dir,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Converted)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, "https://example.com/docs/missing", result.Failed[0].URL)

		// The link to the failed page is left untouched.
		index, err := os.ReadFile(filepath.Join(dir, "index.md"))
		require.NoError(t, err)
		assert.Contains(t, string(index), "[missing](/docs/missing)")
	})

	t.Run("invalid configuration is rejected up front", func(t *testing.T) {
		t.Parallel()

		p := &crawl.Pipeline{Crawler: newFakeSite(nil, nil).crawler()}

		_, err := p.Run(context.Background(), &docmd.Config{})

		require.Error(t, err)
		assert.Equal(t, docmd.EINVALID, docmd.ErrorCode(err))
	})

	t.Run("excluded root URL is fatal", func(t *testing.T) {
		t.Parallel()

		p := &crawl.Pipeline{Crawler: newFakeSite(nil, nil).crawler()}

		_, err := p.Run(context.Background(), &docmd.Config{
			BaseURL:     "https://example.com/docs",
			OutputDir:   t.TempDir(),
			ExcludeURLs: []string{"https://example.com/docs"},
		})

		require.Error(t, err)
		assert.Equal(t, docmd.EINVALID, docmd.ErrorCode(err))
	})
}

func TestPipeline_Preview(t *testing.T) {
	t.Parallel()

	t.Run("reports the path assignment without writing", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(map[string]string{
			"https://example.com/docs":   "root",
			"https://example.com/docs/a": "a",
		}, map[string][]string{
			"https://example.com/docs": {"https://example.com/docs/a"},
		})
		dir := filepath.Join(t.TempDir(), "out")
		p := &crawl.Pipeline{Crawler: site.crawler()}

		entries, err := p.Preview(context.Background(), &docmd.Config{
			BaseURL:   "https://example.com/docs",
			OutputDir: dir,
		})

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, crawl.PreviewEntry{URL: "https://example.com/docs", Path: "index.md"}, entries[0])
		assert.Equal(t, crawl.PreviewEntry{URL: "https://example.com/docs/a", Path: "a.md"}, entries[1])

		_, err = os.Stat(dir)
		assert.True(t, os.IsNotExist(err))
	})
}
