package main

import (
	"fmt"
	"os"

	"github.com/feedgen-project/feedgen"
)

// Run executes the proxy command.
func (c *ProxyCmd) Run(deps *Dependencies) error {
	content, contentType, err := deps.Detector.FetchFeed(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", feedgen.ErrorMessage(err))
		return err
	}

	deps.Logger.Info("fetched feed", "url", c.URL, "content_type", contentType)

	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing feed to %q: %w", c.Output, err)
		}
		fmt.Fprintf(deps.Stdout, "Feed written to %s\n", c.Output)
		return nil
	}

	fmt.Fprintln(deps.Stdout, content)
	return nil
}
