package crawl

import (
	"container/heap"
	"sync"

	"github.com/fwojciec/cpm"
	"github.com/fwojciec/cpm/bloom"
)

// Link is a judge page waiting to be crawled.
type Link struct {
	URL   string
	Kind  cpm.PageKind
	Depth int
}

// Frontier is an in-memory queue of judge pages with Bloom filter
// deduplication. Pages are popped breadth first, shallower pages before
// deeper ones and in URL order within one depth. It is safe for concurrent
// use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *linkHeap
}

// NewFrontier creates a new Frontier sized for n expected pages
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &linkHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push adds a link to the frontier.
// Returns false if the page has already been seen. Links to the same page
// through a mirror host, a fragment or a query string are duplicates.
func (f *Frontier) Push(link Link) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.seen.Visit(link.URL) {
		return false
	}
	heap.Push(f.queue, link)
	return true
}

// Pop returns the next link.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (Link, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return Link{}, false
	}
	link, _ := heap.Pop(f.queue).(Link)
	return link, true
}

// Len returns the number of links in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the page has been processed or queued.
func (f *Frontier) Seen(rawURL string) bool {
	return f.seen.Test(rawURL)
}

// linkHeap implements heap.Interface ordered by depth, then URL.
type linkHeap []Link

func (h linkHeap) Len() int { return len(h) }

func (h linkHeap) Less(i, j int) bool {
	if h[i].Depth != h[j].Depth {
		return h[i].Depth < h[j].Depth
	}
	return h[i].URL < h[j].URL
}

func (h linkHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *linkHeap) Push(x any) {
	link, _ := x.(Link)
	*h = append(*h, link)
}

func (h *linkHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
