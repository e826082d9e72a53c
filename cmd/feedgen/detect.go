package main

import (
	"fmt"

	"github.com/feedgen-project/feedgen"
)

// Run executes the detect command.
func (c *DetectCmd) Run(deps *Dependencies) error {
	feeds, err := deps.Detector.DetectFeeds(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", feedgen.ErrorMessage(err))
		return err
	}

	if len(feeds) == 0 {
		fmt.Fprintln(deps.Stdout, "No feeds found. Use 'feedgen generate' to build one from the page.")
		return nil
	}

	for _, f := range feeds {
		fmt.Fprintf(deps.Stdout, "%-5s  %s  %s\n", f.Type, f.URL, f.Title)
	}

	return nil
}
