package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/jqin/bidwatch"
	"github.com/jqin/bidwatch/extract"
	"github.com/jqin/bidwatch/fs"
	"github.com/jqin/bidwatch/goquery"
	"github.com/jqin/bidwatch/sqlite"
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
	// SQLite database used when the sqlite backend is selected.
	DB *sqlite.DB

	// Services injected before Run() for end-to-end testing. Nil fields
	// are constructed from flags.
	Store         bidwatch.Store
	Extractor     bidwatch.Extractor
	Feed          bidwatch.FeedSource
	Notifier      bidwatch.Notifier
	AlertNotifier bidwatch.Notifier
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(stderr, nil)),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("bidwatch"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'bidwatch --help' to see available commands")
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

	// Wire the store. Tests inject one; otherwise flags select the
	// backend (sqlite when a database path is given, JSON files in the
	// data directory by default).
	deps.Store = m.Store
	if deps.Store == nil {
		if cli.DB != "" {
			m.DB = sqlite.NewDB(cli.DB)
			if err := m.DB.Open(); err != nil {
				return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
			}
			defer m.Close()
			deps.Store = sqlite.NewStore(m.DB)
		} else {
			deps.Store = fs.NewStore(cli.Dir)
		}
	}

	deps.Extractor = m.Extractor
	if deps.Extractor == nil {
		deps.Extractor = &extract.Engine{
			Parser: goquery.NewParser(),
			Period: goquery.NewPeriodLocator(),
			Cascade: []bidwatch.CandidateLocator{
				goquery.NewTableLocator(),
				goquery.NewShapeLocator(),
				goquery.NewProseLocator(),
			},
			Origin: cli.Origin,
			Logger: deps.Logger,
		}
	}

	deps.Feed = m.Feed
	deps.Notifier = m.Notifier
	deps.AlertNotifier = m.AlertNotifier

	return kongCtx.Run(deps)
}
