package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jqin/bidwatch"
)

// DefaultWebhookTimeout bounds one delivery attempt.
const DefaultWebhookTimeout = 10 * time.Second

// Ensure WebhookClient implements bidwatch.Notifier at compile time.
var _ bidwatch.Notifier = (*WebhookClient)(nil)

// WebhookClient delivers markdown messages to a WeChat-Work style group
// webhook.
type WebhookClient struct {
	url    string
	client *http.Client
}

// WebhookOption configures a WebhookClient.
type WebhookOption func(*WebhookClient)

// WithWebhookHTTPClient sets the underlying HTTP client.
func WithWebhookHTTPClient(c *http.Client) WebhookOption {
	return func(w *WebhookClient) { w.client = c }
}

// NewWebhookClient creates a WebhookClient posting to the given webhook URL.
func NewWebhookClient(url string, opts ...WebhookOption) *WebhookClient {
	w := &WebhookClient{
		url:    url,
		client: &http.Client{Timeout: DefaultWebhookTimeout},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

type webhookPayload struct {
	MsgType    string `json:"msgtype"`
	MarkdownV2 struct {
		Content string `json:"content"`
	} `json:"markdown_v2"`
}

// Send posts one markdown message.
func (w *WebhookClient) Send(ctx context.Context, message string) error {
	payload := webhookPayload{MsgType: "markdown_v2"}
	payload.MarkdownV2.Content = message

	body, err := json.Marshal(payload)
	if err != nil {
		return bidwatch.Errorf(bidwatch.EINTERNAL, "encode webhook payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return bidwatch.Errorf(bidwatch.EUNAVAILABLE, "webhook delivery: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return bidwatch.Errorf(bidwatch.EUNAVAILABLE, "webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
