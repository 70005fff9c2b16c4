package main

import (
	"fmt"

	"github.com/fwojciec/cpm"
	"github.com/fwojciec/cpm/crawl"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	// Dry run: show what would be downloaded
	if c.DryRun {
		urls, err := deps.Crawler.Discover(deps.Ctx, c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cpm.ErrorMessage(err))
			return err
		}
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	if c.Concurrency > 0 {
		deps.Crawler.Concurrency = c.Concurrency
	}
	deps.Crawler.Force = c.Force

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressSaved:
			fmt.Fprintf(deps.Stdout, "  saved %s (%d samples)\n", event.Problem.Dir, event.Cases)
		case crawl.ProgressUnchanged:
			fmt.Fprintf(deps.Stdout, "  unchanged %s\n", event.Problem.Dir)
		case crawl.ProgressNoSamples:
			fmt.Fprintf(deps.Stderr, "  no samples %s\n", crawl.TruncateURL(event.URL, 60))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", crawl.TruncateURL(event.URL, 60), cpm.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Crawler.Get(deps.Ctx, c.URL, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cpm.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d problems (%d samples), %d unchanged, %d without samples, %d failed\n",
		result.Saved, result.Cases, result.Unchanged, result.NoSamples, result.Failed)

	if result.Failed > 0 && result.Saved == 0 && result.Unchanged == 0 {
		return fmt.Errorf("no problem could be downloaded from %s", c.URL)
	}
	return nil
}
