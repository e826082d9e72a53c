package main

import (
	"fmt"
)

// Run executes the cache stats command.
func (c *CacheStatsCmd) Run(deps *Dependencies) error {
	if deps.Cache == nil {
		fmt.Fprintln(deps.Stdout, "Decode cache is disabled.")
		return nil
	}

	stats := deps.Cache.Stats(deps.Ctx)
	fmt.Fprintf(deps.Stdout, "entries:  %d", stats.Size)
	if stats.MaxSize > 0 {
		fmt.Fprintf(deps.Stdout, " / %d", stats.MaxSize)
	}
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintf(deps.Stdout, "hits:     %d\n", stats.Hits)
	fmt.Fprintf(deps.Stdout, "misses:   %d\n", stats.Misses)
	fmt.Fprintf(deps.Stdout, "sets:     %d\n", stats.Sets)
	fmt.Fprintf(deps.Stdout, "hit rate: %.1f%%\n", stats.HitRate*100)

	return nil
}

// Run executes the cache clear command.
func (c *CacheClearCmd) Run(deps *Dependencies) error {
	if deps.Cache == nil {
		fmt.Fprintln(deps.Stdout, "Decode cache is disabled.")
		return nil
	}

	deps.Cache.Clear(deps.Ctx)
	fmt.Fprintln(deps.Stdout, "Decode cache cleared.")
	return nil
}
