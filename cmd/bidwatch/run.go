package main

import (
	"fmt"

	"github.com/jqin/bidwatch"
	"github.com/jqin/bidwatch/htmltomarkdown"
	bidhttp "github.com/jqin/bidwatch/http"
	"github.com/jqin/bidwatch/ingest"
	"github.com/jqin/bidwatch/render"
	bidslog "github.com/jqin/bidwatch/slog"
)

// Run executes the run command: one ingestion cycle plus notifications.
func (c *RunCmd) Run(deps *Dependencies) error {
	feed := deps.Feed
	if feed == nil {
		if c.FeedURL == "" {
			return bidwatch.Errorf(bidwatch.EINVALID, "feed URL not configured: set --feed-url or BIDWATCH_FEED_URL")
		}
		feed = bidslog.NewLoggingFeedSource(bidhttp.NewFeedClient(bidhttp.FeedConfig{
			URL:          c.FeedURL,
			SiteGUID:     c.SiteGUID,
			CategoryNum:  c.Category,
			PageSize:     c.PageSize,
			LookbackDays: c.Lookback,
		}), deps.Logger)
	}

	ing := &ingest.Ingestor{
		Feed:        feed,
		Extractor:   deps.Extractor,
		Store:       deps.Store,
		Logger:      deps.Logger,
		Concurrency: c.Concurrency,
	}

	result, err := ing.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bidwatch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Fetched %d announcements, %d new.\n", result.Fetched, len(result.New))
	if len(result.New) == 0 {
		return nil
	}

	notifier := deps.Notifier
	if notifier == nil && c.WebhookURL != "" {
		notifier = bidslog.NewLoggingNotifier(bidhttp.NewWebhookClient(c.WebhookURL), deps.Logger, "main")
	}
	alert := deps.AlertNotifier
	if alert == nil && c.AlertWebhookURL != "" {
		alert = bidslog.NewLoggingNotifier(bidhttp.NewWebhookClient(c.AlertWebhookURL), deps.Logger, "alert")
	}

	if notifier == nil && alert == nil {
		deps.Logger.Warn("no webhook configured; skipping notifications", "new", len(result.New))
		return nil
	}

	renderer := &render.Renderer{
		Converter: htmltomarkdown.NewConverter(),
		Options:   render.Options{WatchKeywords: c.Watch},
	}

	sent := 0
	for i, rec := range result.New {
		msg := renderer.Render(rec, result.NewDocs[i])

		if notifier != nil {
			if err := notifier.Send(deps.Ctx, msg.Text); err != nil {
				fmt.Fprintf(deps.Stderr, "error sending notification for %s: %s\n", rec.ID, bidwatch.ErrorMessage(err))
				continue
			}
			sent++
		}
		if msg.Highlight && alert != nil {
			if err := alert.Send(deps.Ctx, msg.Text); err != nil {
				fmt.Fprintf(deps.Stderr, "error sending alert for %s: %s\n", rec.ID, bidwatch.ErrorMessage(err))
			}
		}
	}

	if notifier != nil {
		fmt.Fprintf(deps.Stdout, "Sent %d notifications.\n", sent)
	}
	return nil
}
