package crawl

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Frontier configuration.
const (
	// frontierExpectedURLs is the expected number of pages for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// defaultMaxPages limits the number of pages fetched by one crawl.
	defaultMaxPages = 500
)

// walkProcessor fetches and parses one page. It runs on a worker.
type walkProcessor func(ctx context.Context, link Link) pageResult

// walkResultHandler handles a finished page on the coordinator goroutine.
// It may push further links to the frontier.
type walkResultHandler func(result *pageResult, frontier *Frontier)

// walkFrontier processes pages concurrently starting from seed. Pages are
// fetched by a pool of workers while a single coordinator owns result
// handling, so handlers need no locking.
func walkFrontier(ctx context.Context, seed Link, concurrency, maxPages int, process walkProcessor, handle walkResultHandler) {
	if concurrency <= 0 {
		concurrency = 4
	}
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(seed)

	workCh := make(chan Link, concurrency)
	resultCh := make(chan pageResult)

	g, gctx := errgroup.WithContext(ctx)
	for range concurrency {
		g.Go(func() error {
			for link := range workCh {
				result := process(gctx, link)
				select {
				case resultCh <- result:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(resultCh)
	}()

	dispatched := 0
	pending := 0
	var next *Link
	if link, ok := frontier.Pop(); ok {
		next = &link
	}

loop:
	for next != nil || pending > 0 {
		if ctx.Err() != nil {
			break
		}

		if next != nil && dispatched < maxPages {
			select {
			case <-ctx.Done():
				break loop
			case workCh <- *next:
				dispatched++
				pending++
				next = nil
			case res := <-resultCh:
				pending--
				handle(&res, frontier)
			}
		} else {
			select {
			case <-ctx.Done():
				break loop
			case res, ok := <-resultCh:
				if !ok {
					break loop
				}
				pending--
				handle(&res, frontier)
			}
		}

		if next == nil && dispatched < maxPages {
			if link, ok := frontier.Pop(); ok {
				next = &link
			}
		}
		if next != nil && dispatched >= maxPages && pending == 0 {
			break
		}
	}

	// Stop the workers and hand over whatever they already finished.
	close(workCh)
	for res := range resultCh {
		handle(&res, frontier)
	}
}
