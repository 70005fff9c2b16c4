package crawl

import (
	"context"

	"github.com/fwojciec/cpm"
)

// Discover returns the problem URLs Get would download from rawURL,
// without extracting or saving anything. The result is sorted.
func (c *Crawler) Discover(ctx context.Context, rawURL string) ([]string, error) {
	ref, err := cpm.ClassifyURL(rawURL)
	if err != nil {
		return nil, err
	}
	if ref.Kind == cpm.PageProblem {
		return []string{rawURL}, nil
	}

	html, err := c.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	parser, err := c.Parsers.ForURL(rawURL)
	if err != nil {
		return nil, err
	}
	links, err := parser.ListSubProblems(html, ref.BasePath())
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(links))
	for _, l := range resolveLinks(rawURL, links) {
		if r, err := cpm.ClassifyURL(l); err == nil && r.Kind == cpm.PageProblem {
			urls = append(urls, l)
		}
	}
	return cpm.CanonicalLinks(urls), nil
}
