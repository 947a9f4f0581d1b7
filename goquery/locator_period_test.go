package goquery_test

import (
	"testing"

	"github.com/jqin/bidwatch/goquery"
	"github.com/stretchr/testify/assert"
)

// Story: Publicity Period Location
// The locator tries labeled-range, labeled, then colon-delimited patterns
// and returns the first non-empty match; absence is an empty string.

func TestPeriodLocator_ExplicitRange(t *testing.T) {
	t.Parallel()

	m := goquery.NewParser().Parse(
		"<p>公示期：2024年3月1日至2024年3月5日。</p><p>其他内容</p>")

	got := goquery.NewPeriodLocator().LocatePeriod(m)
	assert.Equal(t, "2024年3月1日至2024年3月5日", got)
}

func TestPeriodLocator_MarkerWithoutRange(t *testing.T) {
	t.Parallel()

	m := goquery.NewParser().Parse("<p>公示期为3个工作日。</p>")

	got := goquery.NewPeriodLocator().LocatePeriod(m)
	assert.Equal(t, "3个工作日", got)
}

func TestPeriodLocator_ColonDelimitedLabel(t *testing.T) {
	t.Parallel()

	m := goquery.NewParser().Parse("<div>公示时间：2024年3月1日起三天</div>")

	got := goquery.NewPeriodLocator().LocatePeriod(m)
	assert.Equal(t, "2024年3月1日起三天", got)
}

func TestPeriodLocator_FullwidthColonAndDigits(t *testing.T) {
	t.Parallel()

	// Fullwidth digits are folded before matching.
	m := goquery.NewParser().Parse("<p>公示期：２０２４年１月１日至１月３日</p>")

	got := goquery.NewPeriodLocator().LocatePeriod(m)
	assert.Equal(t, "2024年1月1日至1月3日", got)
}

func TestPeriodLocator_RangePatternWinsOverBareMarker(t *testing.T) {
	t.Parallel()

	// Given both a bare marker mention and an explicit range later on
	m := goquery.NewParser().Parse(
		"<p>本公告公示相关事项。</p><p>公示期：2024年3月1日至2024年3月5日</p>")

	// Then the range pattern is preferred over a partial bare-marker match
	got := goquery.NewPeriodLocator().LocatePeriod(m)
	assert.Equal(t, "2024年3月1日至2024年3月5日", got)
}

func TestPeriodLocator_AbsenceIsEmptyString(t *testing.T) {
	t.Parallel()

	m := goquery.NewParser().Parse("<p>没有相关信息</p>")

	assert.Equal(t, "", goquery.NewPeriodLocator().LocatePeriod(m))
}
