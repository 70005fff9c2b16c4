// Package crawl downloads judge problems. It walks from a contest or
// problem URL to every problem page it reaches, extracts the samples and
// hands them to storage, skipping problems whose samples did not change.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/fwojciec/cpm"
)

// Crawler orchestrates the download of judge problems.
type Crawler struct {
	Parsers     cpm.ParserRegistry
	Fetcher     cpm.Fetcher
	Store       cpm.ProblemStore
	RateLimiter cpm.DomainLimiter

	// Problems indexes downloaded problems. Optional; without it every
	// problem is saved.
	Problems cpm.ProblemService

	// Converter renders statements to Markdown. Optional; without it no
	// statement is saved.
	Converter cpm.Converter

	// Logger receives retry warnings. Optional.
	Logger *slog.Logger

	Concurrency int
	MaxPages    int
	RetryDelays []time.Duration

	// Force saves problems even when their samples did not change.
	Force bool
}

// Result holds the outcome of a crawl.
type Result struct {
	Saved     int
	Unchanged int
	NoSamples int
	Failed    int
	Cases     int
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	URL       string
	Problem   *cpm.Problem
	Cases     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressSaved
	ProgressUnchanged
	ProgressNoSamples
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of fetching and parsing a single page.
type pageResult struct {
	link    Link
	links   []string
	problem *cpm.Problem
	cases   []cpm.SampleCase
	err     error
}

// Get downloads every problem reachable from rawURL. A problem URL yields
// that problem; a contest URL yields the problems it lists.
// Returns EINVALID for URLs outside the supported judges. Failures of
// individual pages are counted and reported through progress.
func (c *Crawler) Get(ctx context.Context, rawURL string, progress ProgressFunc) (*Result, error) {
	ref, err := cpm.ClassifyURL(rawURL)
	if err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, URL: rawURL})
	}

	var result Result
	completed := 0
	report := func(typ ProgressType, res *pageResult, err error) {
		completed++
		if progress == nil {
			return
		}
		ev := ProgressEvent{
			Type:      typ,
			Completed: completed,
			URL:       res.link.URL,
			Problem:   res.problem,
			Cases:     len(res.cases),
			Error:     err,
		}
		progress(ev)
	}

	handle := func(res *pageResult, frontier *Frontier) {
		if res.err != nil {
			result.Failed++
			report(ProgressFailed, res, res.err)
			return
		}
		c.enqueue(res, frontier)
		if res.problem == nil {
			return
		}
		if len(res.cases) == 0 {
			result.NoSamples++
			report(ProgressNoSamples, res, nil)
			return
		}

		saved, err := c.save(ctx, res.problem, res.cases)
		switch {
		case err != nil:
			result.Failed++
			report(ProgressFailed, res, err)
		case !saved:
			result.Unchanged++
			report(ProgressUnchanged, res, nil)
		default:
			result.Saved++
			result.Cases += len(res.cases)
			report(ProgressSaved, res, nil)
		}
	}

	process := func(ctx context.Context, link Link) pageResult {
		return c.processPage(ctx, ref, link)
	}

	seed := Link{URL: rawURL, Kind: ref.Kind}
	walkFrontier(ctx, seed, c.Concurrency, c.MaxPages, process, handle)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: completed})
	}

	if err := ctx.Err(); err != nil {
		return &result, err
	}
	return &result, nil
}

// processPage fetches one page and extracts its problem or its links.
func (c *Crawler) processPage(ctx context.Context, seed *cpm.PageRef, link Link) pageResult {
	result := pageResult{link: link}

	html, err := c.fetch(ctx, link.URL)
	if err != nil {
		result.err = err
		return result
	}

	parser, err := c.Parsers.ForURL(link.URL)
	if err != nil {
		result.err = err
		return result
	}

	ext, err := parser.Extract(html, cpm.ExtractOptions{
		TitlePolicy: cpm.TitleTrim,
		ListLinks:   link.Kind != cpm.PageProblem,
		BasePath:    seed.BasePath(),
	})
	if err != nil {
		result.err = err
		return result
	}
	result.links = resolveLinks(link.URL, ext.Links)

	// Pages that list problems are indexes; anything else is a problem.
	if link.Kind == cpm.PageContest || (link.Kind == cpm.PageUnknown && len(result.links) > 0) {
		return result
	}

	ref, err := cpm.ClassifyURL(link.URL)
	if err != nil {
		result.err = err
		return result
	}

	problem := &cpm.Problem{
		URL:         link.URL,
		Site:        parser.Site(),
		ContestName: ext.Metadata.ContestTitle,
		ProblemName: ext.Metadata.Title,
	}
	if problem.ContestName == "" {
		problem.ContestName = ref.Contest
	}
	if problem.ProblemName == "" {
		problem.ProblemName = ref.Problem
	}

	cases := ext.Samples.Cases
	problem.SampleCount = len(cases)
	problem.SamplesHash = HashSamples(cases)

	if c.Converter != nil && ext.StatementHTML != "" {
		md, err := c.Converter.Convert(ext.StatementHTML)
		if err != nil {
			result.err = err
			return result
		}
		problem.Statement = md
	}

	result.problem = problem
	result.cases = cases
	return result
}

// fetch waits for the rate limiter and fetches with retry.
func (c *Crawler) fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", cpm.Errorf(cpm.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, rawURL, c.Fetcher.Fetch, c.Logger, delays)
}

// enqueue pushes the problem links of an index page.
func (c *Crawler) enqueue(res *pageResult, frontier *Frontier) {
	for _, l := range res.links {
		ref, err := cpm.ClassifyURL(l)
		if err != nil || ref.Kind != cpm.PageProblem {
			continue
		}
		frontier.Push(Link{URL: l, Kind: cpm.PageProblem, Depth: res.link.Depth + 1})
	}
}

// save stores a problem unless the index holds the same samples for it
// in a directory that still exists. It reports whether the problem was
// written.
func (c *Crawler) save(ctx context.Context, problem *cpm.Problem, cases []cpm.SampleCase) (bool, error) {
	var existing *cpm.Problem
	if c.Problems != nil {
		p, err := c.Problems.FindProblemByURL(ctx, problem.URL)
		switch {
		case err == nil:
			existing = p
		case cpm.ErrorCode(err) != cpm.ENOTFOUND:
			return false, err
		}
	}

	if existing != nil && !c.Force && existing.SamplesHash == problem.SamplesHash && dirExists(existing.Dir) {
		problem.ID = existing.ID
		problem.Dir = existing.Dir
		return false, nil
	}

	if existing != nil {
		problem.CreatedAt = existing.CreatedAt
	}
	if err := c.Store.Save(ctx, problem, cases); err != nil {
		return false, err
	}

	if c.Problems == nil {
		return true, nil
	}
	if existing == nil {
		return true, c.Problems.CreateProblem(ctx, problem)
	}
	updated, err := c.Problems.UpdateProblem(ctx, existing.ID, cpm.ProblemUpdate{
		ContestName: &problem.ContestName,
		ProblemName: &problem.ProblemName,
		Dir:         &problem.Dir,
		SampleCount: &problem.SampleCount,
		SamplesHash: &problem.SamplesHash,
	})
	if err != nil {
		return false, err
	}
	problem.ID = updated.ID
	return true, nil
}

// resolveLinks makes relative links absolute against the page URL.
func resolveLinks(pageURL string, links []string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	resolved := make([]string, 0, len(links))
	for _, l := range links {
		ref, err := url.Parse(l)
		if err != nil {
			continue
		}
		resolved = append(resolved, base.ResolveReference(ref).String())
	}
	return resolved
}

func dirExists(dir string) bool {
	if dir == "" {
		return false
	}
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
