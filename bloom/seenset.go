// Package bloom provides a probabilistic seen-set for URL deduplication.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// SeenSet answers "might this URL have been seen before?" in constant space.
// False positives are possible; false negatives are not, so a negative answer
// is authoritative. Callers that need exactness confirm positives against an
// exact record.
type SeenSet struct {
	f *bloom.BloomFilter
}

// NewSeenSet creates a SeenSet sized for n expected URLs with the given
// false positive rate.
func NewSeenSet(n uint, fpRate float64) *SeenSet {
	return &SeenSet{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a URL as seen.
func (s *SeenSet) Add(url string) {
	s.f.AddString(url)
}

// MaybeSeen returns false only if the URL has definitely never been added.
func (s *SeenSet) MaybeSeen(url string) bool {
	return s.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs added.
func (s *SeenSet) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}
