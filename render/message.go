// Package render builds human-readable notification messages from parsed
// records. Rendering is a pure presentation concern: extraction preserves
// price display strings verbatim, and this package decides how to reformat
// them for the notification channel.
package render

import (
	"fmt"
	"strings"

	"github.com/jqin/bidwatch"
)

// Options control presentation policy. The ten-thousand-unit reformatting
// threshold is deliberately configurable rather than load-bearing: observed
// announcement templates disagree on when to switch units.
type Options struct {
	// TenThousandThreshold is the amount in yuan above which currency
	// prices are displayed in 万元. Defaults to DefaultTenThousandThreshold.
	TenThousandThreshold float64

	// WatchKeywords mark a message for the alert channel when any of
	// them appears in the rendered text.
	WatchKeywords []string

	// ExcerptRunes caps the body excerpt appended to candidate-less
	// messages. Defaults to DefaultExcerptRunes.
	ExcerptRunes int
}

// Presentation defaults.
const (
	DefaultTenThousandThreshold = 100000
	DefaultExcerptRunes         = 300
)

// Message is one rendered notification.
type Message struct {
	Text string

	// Highlight is set when a watch keyword matched; callers route
	// highlighted messages to the alert channel as well.
	Highlight bool
}

// Renderer renders parsed records into webhook markdown.
type Renderer struct {
	// Converter, if set, supplies a markdown body excerpt for records
	// where extraction found no candidates.
	Converter bidwatch.Converter

	Options Options
}

// Render builds the notification for one record. doc supplies the raw body
// for the excerpt fallback and may be nil.
func (r *Renderer) Render(rec *bidwatch.ParsedRecord, doc *bidwatch.Document) Message {
	var b strings.Builder

	b.WriteString("# 📢 中标候选人公告\n")
	fmt.Fprintf(&b, "📜 标题：%s\n", orUnknown(rec.RawMeta.Title, "未知标题"))
	fmt.Fprintf(&b, "📅 日期：%s\n", orUnknown(rec.RawMeta.PublishedAt, "未知日期"))
	fmt.Fprintf(&b, "⏳ 公示时间：%s\n\n", rec.Extracted.PublicityPeriod)

	switch {
	case hasProvidedPrice(rec.Extracted.Candidates):
		b.WriteString("🏆 中标候选人及报价：\n")
		b.WriteString(r.candidateTable(rec.Extracted.Candidates))
		b.WriteString("\n\n")
	case len(rec.Extracted.Candidates) > 0:
		b.WriteString("🏆 中标候选人：\n")
		for i, c := range rec.Extracted.Candidates {
			fmt.Fprintf(&b, "%d. %s\n", i+1, c.Bidder)
		}
		b.WriteString("\n")
	default:
		if excerpt := r.excerpt(doc); excerpt != "" {
			b.WriteString("📄 公告摘要：\n")
			b.WriteString(excerpt)
			b.WriteString("\n\n")
		}
	}

	fmt.Fprintf(&b, "🔗 详情链接：%s", rec.Extracted.SourceURL)

	text := b.String()
	return Message{
		Text:      text,
		Highlight: containsAnyKeyword(text, r.Options.WatchKeywords),
	}
}

func (r *Renderer) candidateTable(candidates []bidwatch.Candidate) string {
	var b strings.Builder
	b.WriteString("| 序号 | 中标候选人 | 投标报价 |\n")
	b.WriteString("| :----- | :----: | -------: |\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, c.Bidder, r.FormatPrice(c))
	}
	return strings.TrimRight(b.String(), "\n")
}

// excerpt converts the announcement body to markdown and truncates it.
func (r *Renderer) excerpt(doc *bidwatch.Document) string {
	if r.Converter == nil || doc == nil {
		return ""
	}
	markdown, err := r.Converter.Convert(doc.Markup)
	if err != nil {
		return ""
	}
	markdown = strings.TrimSpace(markdown)

	limit := r.Options.ExcerptRunes
	if limit <= 0 {
		limit = DefaultExcerptRunes
	}
	runes := []rune(markdown)
	if len(runes) > limit {
		return string(runes[:limit]) + "…"
	}
	return markdown
}

func hasProvidedPrice(candidates []bidwatch.Candidate) bool {
	for _, c := range candidates {
		if c.Price != bidwatch.PriceNotProvided && c.Price != "" {
			return true
		}
	}
	return false
}

func containsAnyKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func orUnknown(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
