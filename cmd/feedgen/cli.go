package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/feedgen-project/feedgen"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Settings map[string]any

	Generator *feedgen.FeedGenerator
	Detector  feedgen.FeedDetector
	Cache     feedgen.DecodeCache
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" help:"Path to a YAML settings file"`
	Verbose bool   `short:"v" help:"Log pipeline operations to stderr"`

	Generate GenerateCmd `cmd:"" help:"Generate an RSS feed from a web page"`
	Detect   DetectCmd   `cmd:"" help:"Detect syndication feeds a page already offers"`
	Proxy    ProxyCmd    `cmd:"" help:"Fetch an existing feed and print it"`
	Cache    CacheCmd    `cmd:"" help:"Inspect or clear the URL decode cache"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	URL         string `arg:"" help:"Page URL to generate a feed for"`
	Output      string `short:"o" help:"Write the feed to a file instead of stdout"`
	MaxItems    int    `help:"Maximum number of feed items"`
	UserAgent   string `help:"User-Agent header override"`
	Render      bool   `help:"Render the page in a headless browser before extraction"`
	FullContent bool   `help:"Replace item descriptions with full article content"`
	Format      string `enum:"rss,json" default:"rss" help:"Output format (rss or json)"`
}

// DetectCmd is the "detect" subcommand.
type DetectCmd struct {
	URL string `arg:"" help:"Page URL to inspect for existing feeds"`
}

// ProxyCmd is the "proxy" subcommand.
type ProxyCmd struct {
	URL    string `arg:"" help:"Feed URL to fetch"`
	Output string `short:"o" help:"Write the feed to a file instead of stdout"`
}

// CacheCmd groups the decode cache subcommands.
type CacheCmd struct {
	Stats CacheStatsCmd `cmd:"" help:"Show decode cache statistics"`
	Clear CacheClearCmd `cmd:"" help:"Remove all decode cache entries"`
}

// CacheStatsCmd is the "cache stats" subcommand.
type CacheStatsCmd struct{}

// CacheClearCmd is the "cache clear" subcommand.
type CacheClearCmd struct{}
