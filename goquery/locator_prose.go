package goquery

import (
	"regexp"
	"strings"

	"github.com/jqin/bidwatch"
	"golang.org/x/text/width"
)

var _ bidwatch.CandidateLocator = (*ProseLocator)(nil)

// ProseLocator is the last resort of the cascade: it operates purely on the
// flattened text when no usable table was found. Strategies in priority
// order: an explicit rank enumeration, a delimited candidate list, then
// generic organization-name matching. Prices are located by an independent
// parallel search and zipped by position.
type ProseLocator struct{}

// NewProseLocator creates a new ProseLocator.
func NewProseLocator() *ProseLocator {
	return &ProseLocator{}
}

var (
	// 第一名：某某公司 / 第2名: 某某集团
	rankPattern = regexp.MustCompile(`第[一二三四五六七八九十0-9]+名[:：]\s*([^\n（(，,、；;。]+)`)

	// 中标候选人：甲公司、乙公司、丙公司
	listPattern = regexp.MustCompile(`(?:中标候选人|投标候选人|入围单位)[:：]\s*([^\n。；]+)`)

	listDelimiters = regexp.MustCompile(`[、，,;；]`)

	// A run of CJK characters ending in a corporate-entity suffix.
	orgPattern = regexp.MustCompile(`[\p{Han}]{2,20}(?:有限公司|有限责任公司|公司|集团|研究院|设计院|事务所)`)

	// Labeled amounts outrank bare number/unit tokens.
	labeledPricePattern = regexp.MustCompile(`(?:投标报价|投标总价|投标价|报价|下浮率)[:：]\s*([0-9][0-9,.]*\s*(?:万元|元|%)?)`)
	genericPricePattern = regexp.MustCompile(`[0-9][0-9,]*\.?[0-9]*\s*(?:万元|元|%)`)
)

func (l *ProseLocator) Name() string { return "prose" }

func (l *ProseLocator) LocateCandidates(m bidwatch.MarkupModel) []bidwatch.Candidate {
	text := width.Fold.String(m.Text())

	bidders := locateBidders(text)
	if len(bidders) == 0 {
		return nil
	}
	return bidwatch.ZipCandidates(bidders, locatePrices(text))
}

func locateBidders(text string) []string {
	// Explicit rank enumeration is the strongest prose evidence.
	if matches := rankPattern.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		bidders := make([]string, 0, len(matches))
		for _, match := range matches {
			if name := strings.TrimSpace(match[1]); name != "" {
				bidders = append(bidders, name)
			}
		}
		return bidders
	}

	// A single delimited list after a candidates label.
	if match := listPattern.FindStringSubmatch(text); match != nil {
		var bidders []string
		for _, part := range listDelimiters.Split(match[1], -1) {
			if name := strings.TrimSpace(part); name != "" {
				bidders = append(bidders, name)
			}
		}
		if len(bidders) > 0 {
			return bidders
		}
	}

	// Generic organization names, deduplicated in first-seen order.
	seen := make(map[string]struct{})
	var bidders []string
	for _, name := range orgPattern.FindAllString(text, -1) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		bidders = append(bidders, name)
	}
	return bidders
}

func locatePrices(text string) []string {
	if matches := labeledPricePattern.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		prices := make([]string, 0, len(matches))
		for _, match := range matches {
			prices = append(prices, strings.TrimSpace(match[1]))
		}
		return prices
	}
	var prices []string
	for _, token := range genericPricePattern.FindAllString(text, -1) {
		prices = append(prices, strings.TrimSpace(token))
	}
	return prices
}
