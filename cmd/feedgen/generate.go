package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/feedgen-project/feedgen"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	maxItems := c.MaxItems
	if maxItems <= 0 {
		maxItems = intSetting(deps.Settings, "max_items", feedgen.DefaultMaxItems)
	}

	feed, err := deps.Generator.Generate(deps.Ctx, c.URL, feedgen.GenerateOptions{
		MaxItems:    maxItems,
		FullContent: c.FullContent,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", feedgen.ErrorMessage(err))
		return err
	}

	var out string
	switch c.Format {
	case "json":
		data, err := json.MarshalIndent(feed, "", "  ")
		if err != nil {
			return err
		}
		out = string(data)
	default:
		out, err = feed.RSS()
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", feedgen.ErrorMessage(err))
			return err
		}
	}

	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(out), 0o644); err != nil {
			return fmt.Errorf("writing feed to %q: %w", c.Output, err)
		}
		fmt.Fprintf(deps.Stdout, "Feed written to %s (%d items)\n", c.Output, len(feed.Items))
		return nil
	}

	fmt.Fprintln(deps.Stdout, out)
	return nil
}
