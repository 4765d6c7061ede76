package bloom_test

import (
	"fmt"
	"testing"

	"github.com/pmarkowski/docmd/bloom"
	"github.com/stretchr/testify/assert"
)

func TestSeenSet_NegativeIsAuthoritative(t *testing.T) {
	t.Parallel()

	s := bloom.NewSeenSet(1000, 0.01)

	assert.False(t, s.MaybeSeen("https://example.com/docs/never-added"))
}

func TestSeenSet_AddedURLsAreSeen(t *testing.T) {
	t.Parallel()

	s := bloom.NewSeenSet(1000, 0.01)

	urls := []string{
		"https://example.com/docs",
		"https://example.com/docs/api",
		"https://example.com/docs/guide",
	}
	for _, u := range urls {
		s.Add(u)
	}
	for _, u := range urls {
		assert.True(t, s.MaybeSeen(u), "added URL must always test positive: %s", u)
	}
}

func TestSeenSet_EstimatedCount(t *testing.T) {
	t.Parallel()

	s := bloom.NewSeenSet(10000, 0.01)

	const n = 500
	for i := 0; i < n; i++ {
		s.Add(fmt.Sprintf("https://example.com/page/%d", i))
	}

	got := s.EstimatedCount()
	assert.InDelta(t, n, got, n/10, "estimate should be within 10%%")
}
