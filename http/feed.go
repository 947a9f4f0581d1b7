// Package http provides HTTP-based implementations of the bidwatch feed
// source and webhook notifier.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jqin/bidwatch"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultRetryDelays returns the backoff delays for feed retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FeedConfig identifies one monitored announcement category on the
// procurement gateway.
type FeedConfig struct {
	// URL is the gateway list endpoint.
	URL string

	// SiteGUID and CategoryNum select the site and announcement category.
	SiteGUID    string
	CategoryNum string

	// PageSize is the number of newest announcements to request.
	PageSize int

	// LookbackDays, when positive, restricts the query to a trailing
	// date window. Zero requests without a date filter.
	LookbackDays int
}

// Ensure FeedClient implements bidwatch.FeedSource at compile time.
var _ bidwatch.FeedSource = (*FeedClient)(nil)

// FeedClient fetches announcement batches from the gateway with retry and
// request pacing.
type FeedClient struct {
	config      FeedConfig
	client      *http.Client
	limiter     *rate.Limiter
	retryDelays []time.Duration
	now         func() time.Time
}

// FeedOption configures a FeedClient.
type FeedOption func(*FeedClient)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) FeedOption {
	return func(f *FeedClient) { f.client = c }
}

// WithRetryDelays sets the backoff delays between attempts.
// Useful for testing without waiting for real delays.
func WithRetryDelays(delays []time.Duration) FeedOption {
	return func(f *FeedClient) { f.retryDelays = delays }
}

// WithRateLimit sets the sustained request rate against the gateway.
func WithRateLimit(rps float64) FeedOption {
	return func(f *FeedClient) { f.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// WithClock overrides the time source used for the lookback window.
func WithClock(now func() time.Time) FeedOption {
	return func(f *FeedClient) { f.now = now }
}

// NewFeedClient creates a FeedClient for the given feed.
func NewFeedClient(config FeedConfig, opts ...FeedOption) *FeedClient {
	f := &FeedClient{
		config:      config,
		client:      &http.Client{Timeout: DefaultFetchTimeout},
		limiter:     rate.NewLimiter(rate.Limit(1), 1),
		retryDelays: DefaultRetryDelays(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchLatest retrieves the newest announcement batch, retrying transient
// failures with backoff.
func (f *FeedClient) FetchLatest(ctx context.Context) ([]*bidwatch.Document, error) {
	maxAttempts := len(f.retryDelays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		docs, err := f.fetch(ctx)
		if err == nil {
			return docs, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.retryDelays[attempt]):
		}
	}

	return nil, bidwatch.Errorf(bidwatch.EUNAVAILABLE, "feed unavailable after %d attempts: %v", maxAttempts, lastErr)
}

// feedItem is the gateway's wire shape for one announcement.
type feedItem struct {
	InfoID      string `json:"infoid"`
	InfoURL     string `json:"infourl"`
	Title       string `json:"title"`
	CustomTitle string `json:"customtitle"`
	InfoDate    string `json:"infodate"`
	InfoContent string `json:"infocontent"`
}

type feedResponse struct {
	Custom struct {
		InfoData []feedItem `json:"infodata"`
	} `json:"custom"`
}

func (f *FeedClient) fetch(ctx context.Context) ([]*bidwatch.Document, error) {
	form := url.Values{
		"siteGuid":    {f.config.SiteGUID},
		"categoryNum": {f.config.CategoryNum},
		"pageindex":   {"0"},
		"pagesize":    {strconv.Itoa(f.config.PageSize)},
		"content":     {""},
		"startdate":   {""},
		"enddate":     {""},
		"xiqucode":    {""},
	}
	if f.config.LookbackDays > 0 {
		now := f.now()
		form.Set("startdate", now.AddDate(0, 0, -f.config.LookbackDays).Format("2006-01-02 00:00:00"))
		form.Set("enddate", now.Format("2006-01-02 23:59:59"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.config.URL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from feed", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var decoded feedResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode feed response: %w", err)
	}

	docs := make([]*bidwatch.Document, 0, len(decoded.Custom.InfoData))
	for _, item := range decoded.Custom.InfoData {
		title := item.CustomTitle
		if title == "" {
			title = item.Title
		}
		docs = append(docs, &bidwatch.Document{
			ID:          item.InfoID,
			URL:         item.InfoURL,
			Title:       title,
			PublishedAt: item.InfoDate,
			Markup:      item.InfoContent,
		})
	}
	return docs, nil
}
