package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/jqin/bidwatch"
)

// Dependencies holds all services and configuration for command execution.
// Fields left nil are constructed from flags by the command itself, which
// lets tests inject mocks through Main.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Store         bidwatch.Store
	Extractor     bidwatch.Extractor
	Feed          bidwatch.FeedSource
	Notifier      bidwatch.Notifier
	AlertNotifier bidwatch.Notifier
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Dir    string `env:"BIDWATCH_DIR" default:"data" help:"Data directory for the file store"`
	DB     string `env:"BIDWATCH_DB" help:"SQLite database path (overrides the file store)"`
	Origin string `env:"BIDWATCH_ORIGIN" help:"Origin prefixed to path-only announcement links"`

	Run     RunCmd     `cmd:"" help:"Execute one ingestion cycle and send notifications"`
	Reparse ReparseCmd `cmd:"" help:"Re-run extraction over every stored announcement"`
	List    ListCmd    `cmd:"" help:"List stored parsed records"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	FeedURL         string   `env:"BIDWATCH_FEED_URL" help:"Gateway list endpoint"`
	SiteGUID        string   `env:"BIDWATCH_SITE_GUID" help:"Gateway site identifier"`
	Category        string   `env:"BIDWATCH_CATEGORY" help:"Announcement category number"`
	PageSize        int      `default:"10" help:"Number of newest announcements to request"`
	Lookback        int      `help:"Restrict the query to the trailing N days"`
	WebhookURL      string   `env:"BIDWATCH_WEBHOOK_URL" help:"Webhook for new-announcement messages"`
	AlertWebhookURL string   `env:"BIDWATCH_ALERT_WEBHOOK_URL" help:"Webhook for keyword-matched messages"`
	Watch           []string `env:"BIDWATCH_WATCH" help:"Keywords that route a message to the alert webhook"`
	Concurrency     int      `short:"c" default:"4" help:"Concurrent extraction limit"`
}

// ReparseCmd is the "reparse" subcommand.
type ReparseCmd struct{}

// ListCmd is the "list" subcommand.
type ListCmd struct{}
