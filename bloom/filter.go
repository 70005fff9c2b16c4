// Package bloom provides a visited set for judge pages backed by a Bloom
// filter.
package bloom

import (
	"net/url"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/cpm"
)

// Filter records which judge pages were already visited. URLs are reduced
// to a page key first, so mirrors, fragments and query strings of the same
// page are recognized as one. It is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected pages
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Key returns the page key of rawURL: the canonical judge host followed by
// the path without trailing slash. Unparsable URLs are used verbatim.
func Key(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	host := strings.ToLower(u.Host)
	if site := cpm.SiteFromHost(host); site != cpm.SiteUnknown {
		host = site.Host()
	}
	return host + strings.TrimSuffix(u.EscapedPath(), "/")
}

// Add marks the page of rawURL as visited.
func (f *Filter) Add(rawURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(Key(rawURL))
}

// Test returns true if the page of rawURL might have been visited.
// False positives are possible; false negatives are not.
func (f *Filter) Test(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(Key(rawURL))
}

// Visit marks the page of rawURL as visited and reports whether this is
// the first visit.
func (f *Filter) Visit(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.f.TestOrAddString(Key(rawURL))
}

// EstimatedCount returns the approximate number of pages in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
