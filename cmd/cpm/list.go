package main

import (
	"fmt"

	"github.com/fwojciec/cpm"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := cpm.ProblemFilter{Limit: c.Limit}
	if c.Site != "" {
		site := cpm.Site(c.Site)
		if site.Host() == "" {
			err := cpm.Errorf(cpm.EINVALID, "unsupported judge: %s", c.Site)
			fmt.Fprintf(deps.Stderr, "error: %s\n", cpm.ErrorMessage(err))
			return err
		}
		filter.Site = &site
	}
	if c.Contest != "" {
		filter.ContestName = &c.Contest
	}

	problems, err := deps.Problems.FindProblems(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cpm.ErrorMessage(err))
		return err
	}

	if len(problems) == 0 {
		fmt.Fprintln(deps.Stdout, "No problems found. Use 'cpm get' to download one.")
		return nil
	}

	for _, p := range problems {
		fmt.Fprintf(deps.Stdout, "%s  %d samples  %s\n", p.Dir, p.SampleCount, p.URL)
	}

	return nil
}
