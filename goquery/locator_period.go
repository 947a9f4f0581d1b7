package goquery

import (
	"regexp"
	"strings"

	"github.com/jqin/bidwatch"
	"golang.org/x/text/width"
)

var _ bidwatch.PeriodLocator = (*PeriodLocator)(nil)

// PeriodLocator finds the publicity-period string. Authoring templates label
// the window inconsistently (公示期/公示时间/公示为, with or without an
// explicit 至 range), so patterns are tried highest-specificity first and
// the first non-empty match wins. Absence is valid: an announcement without
// a recognizable window yields an empty string, not an error.
type PeriodLocator struct{}

// NewPeriodLocator creates a new PeriodLocator.
func NewPeriodLocator() *PeriodLocator {
	return &PeriodLocator{}
}

// periodPatterns in priority order: a labeled marker with an explicit
// X至Y range, the same marker without the range requirement, then the
// colon-delimited 公示时间 label.
var periodPatterns = []*regexp.Regexp{
	regexp.MustCompile(`公示(?:期|时间)?[为:：]?\s*([^\n]+?至[^\n，。；]+)`),
	regexp.MustCompile(`公示(?:期|时间)[为:：]\s*([^\n，。；]+)`),
	regexp.MustCompile(`公示时间[:：]\s*([^\n，。；]+)`),
}

// LocatePeriod returns the publicity-period string or "" when none is found.
func (l *PeriodLocator) LocatePeriod(m bidwatch.MarkupModel) string {
	// Fullwidth colons and digits are folded to their ASCII forms so a
	// single pattern set matches both authoring conventions.
	text := width.Fold.String(m.Text())

	for _, pattern := range periodPatterns {
		// Labeled paragraphs are higher confidence than a match buried
		// somewhere in the flattened body text.
		for _, para := range m.Paragraphs() {
			if match := pattern.FindStringSubmatch(width.Fold.String(para)); match != nil {
				return cleanPeriod(match[1])
			}
		}
		if match := pattern.FindStringSubmatch(text); match != nil {
			return cleanPeriod(match[1])
		}
	}
	return ""
}

func cleanPeriod(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "。；;，,")
}
