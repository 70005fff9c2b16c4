package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/cpm"
	"github.com/fwojciec/cpm/fs"
)

// Run executes the download command.
func (c *DownloadCmd) Run(deps *Dependencies) error {
	source, parser, html, err := c.page(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cpm.ErrorMessage(err))
		return err
	}

	result, err := parser.ExtractSamples(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cpm.ErrorMessage(err))
		return err
	}
	if len(result.Cases) == 0 {
		err := cpm.Errorf(cpm.ENOTFOUND, "no samples found on %s", source)
		fmt.Fprintf(deps.Stderr, "error: %s\n", cpm.ErrorMessage(err))
		return err
	}

	if err := fs.WriteSamples(c.Dir, result.Cases); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cpm.ErrorMessage(err))
		return err
	}

	for i, sc := range result.Cases {
		fmt.Fprintf(deps.Stdout, "=== Sample %d ===\n", i+1)
		fmt.Fprintf(deps.Stdout, "Input:\n%s\nOutput:\n%s\n", sc.Input, sc.Output)
	}
	fmt.Fprintf(deps.Stdout, "Wrote %d samples to %s\n", len(result.Cases), c.Dir)
	return nil
}

// page returns the problem page markup and its parser. A saved page is
// read from disk and its judge detected from the markup; otherwise the
// page is fetched from the URL.
func (c *DownloadCmd) page(deps *Dependencies) (source string, parser cpm.Parser, html string, err error) {
	if c.HTML != "" {
		data, err := os.ReadFile(c.HTML)
		if os.IsNotExist(err) {
			return "", nil, "", cpm.Errorf(cpm.ENOTFOUND, "no such file: %s", c.HTML)
		} else if err != nil {
			return "", nil, "", err
		}
		html = string(data)
		parser, err = deps.Parsers.ForHTML(html)
		if err != nil {
			return "", nil, "", err
		}
		return c.HTML, parser, html, nil
	}

	if c.URL == "" {
		return "", nil, "", cpm.Errorf(cpm.EINVALID, "a problem URL or --html FILE is required")
	}
	ref, err := cpm.ClassifyURL(c.URL)
	if err != nil {
		return "", nil, "", err
	}
	if ref.Kind != cpm.PageProblem {
		return "", nil, "", cpm.Errorf(cpm.EINVALID, "%s is not a problem page, use 'cpm get' for contests", c.URL)
	}
	if parser, err = deps.Parsers.ForURL(c.URL); err != nil {
		return "", nil, "", err
	}
	if html, err = deps.Fetcher.Fetch(deps.Ctx, c.URL); err != nil {
		return "", nil, "", err
	}
	return c.URL, parser, html, nil
}
