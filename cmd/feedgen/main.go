package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/feedgen-project/feedgen"
	"github.com/feedgen-project/feedgen/cache"
	feedgoquery "github.com/feedgen-project/feedgen/goquery"
	"github.com/feedgen-project/feedgen/googlenews"
	feedhttp "github.com/feedgen-project/feedgen/http"
	"github.com/feedgen-project/feedgen/normalize"
	"github.com/feedgen-project/feedgen/rod"
	feedslog "github.com/feedgen-project/feedgen/slog"
	"github.com/feedgen-project/feedgen/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher used by the generate command. Set for end-to-end tests;
	// wired automatically otherwise.
	Fetcher feedgen.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		return m.Fetcher.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("feedgen"),
		kong.Description("Generate RSS feeds from web pages that don't offer one."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'feedgen --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	settings, err := loadSettings(cli.Config)
	if err != nil {
		return err
	}
	deps.Settings = settings

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	// The decode cache backs both the generate pipeline and the cache
	// inspection commands.
	deps.Cache = cache.New(ctx, cache.ConfigFromMap(settings), logger)

	var decoder feedgen.URLDecoder
	gnCfg := googlenews.ConfigFromMap(settings)
	if gnCfg.Enabled {
		decoder = feedslog.NewLoggingDecoder(googlenews.New(gnCfg, nil, deps.Cache, logger), logger)
	}

	userAgent := stringSetting(settings, "user_agent", feedhttp.DefaultUserAgent)
	if cli.Generate.UserAgent != "" {
		userAgent = cli.Generate.UserAgent
	}

	deps.Detector = feedhttp.NewDetector(userAgent, logger)

	// The generate pipeline needs a fetcher, which for rendered pages
	// means launching a browser. Wire it only when generating.
	if strings.HasPrefix(kongCtx.Command(), "generate") {
		if m.Fetcher == nil {
			if cli.Generate.Render {
				fetcher, err := rod.NewFetcher(rod.WithUserAgent(userAgent))
				if err != nil {
					fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
					return err
				}
				m.Fetcher = fetcher
			} else {
				m.Fetcher = feedhttp.NewFetcher(feedhttp.WithUserAgent(userAgent))
			}
		}
		defer m.Close()

		generator := feedgen.NewFeedGenerator(
			feedslog.NewLoggingFetcher(m.Fetcher, logger),
			feedgoquery.New(normalize.New(decoder)),
			deps.Detector,
			logger,
		)
		if cli.Generate.FullContent {
			generator.Content = trafilatura.NewExtractor()
		}
		deps.Generator = generator
	}

	return kongCtx.Run(deps)
}
