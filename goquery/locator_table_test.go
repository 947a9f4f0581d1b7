package goquery_test

import (
	"testing"

	"github.com/jqin/bidwatch"
	"github.com/jqin/bidwatch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, markup string) bidwatch.MarkupModel {
	t.Helper()
	return goquery.NewParser().Parse(markup)
}

// Story: Header Table Location
// Tables with an explicit header row are the highest-confidence source of
// bidder/price pairs; columns are discovered independently per keyword group.

func TestTableLocator_HeaderRowWithBidderAndPrice(t *testing.T) {
	t.Parallel()

	m := parse(t, `
		<table>
			<tr><td>候选人名称</td><td>报价</td></tr>
			<tr><td>某某建设集团有限公司</td><td>1,234,567.00元</td></tr>
		</table>`)

	got := goquery.NewTableLocator().LocateCandidates(m)

	require.Len(t, got, 1)
	assert.Equal(t, "某某建设集团有限公司", got[0].Bidder)
	assert.Equal(t, "1,234,567.00元", got[0].Price)
	assert.Equal(t, bidwatch.PriceCurrency, got[0].Kind)
}

func TestTableLocator_VariableColumnLayout(t *testing.T) {
	t.Parallel()

	// Given a table with a rank column before the bidder column
	m := parse(t, `
		<table>
			<tr><th>排名</th><th>中标候选人</th><th>工期</th><th>投标报价</th></tr>
			<tr><td>1</td><td>甲建设有限公司</td><td>120天</td><td>356.8万元</td></tr>
			<tr><td>2</td><td>乙市政集团</td><td>130天</td><td>361.2万元</td></tr>
		</table>`)

	got := goquery.NewTableLocator().LocateCandidates(m)

	require.Len(t, got, 2)
	assert.Equal(t, "甲建设有限公司", got[0].Bidder)
	assert.Equal(t, "356.8万元", got[0].Price)
	assert.Equal(t, "乙市政集团", got[1].Bidder)
	assert.Equal(t, "361.2万元", got[1].Price)
}

func TestTableLocator_BidderWithoutPriceColumn(t *testing.T) {
	t.Parallel()

	// Column assignment is independent per keyword group: a table may
	// contribute bidders with no price column at all.
	m := parse(t, `
		<table>
			<tr><td>投标人名称</td><td>资质等级</td></tr>
			<tr><td>甲建设有限公司</td><td>一级</td></tr>
		</table>`)

	got := goquery.NewTableLocator().LocateCandidates(m)

	require.Len(t, got, 1)
	assert.Equal(t, "甲建设有限公司", got[0].Bidder)
	assert.Equal(t, bidwatch.PriceNotProvided, got[0].Price)
	assert.Equal(t, bidwatch.PriceUnparsed, got[0].Kind)
}

func TestTableLocator_DiscardsHeaderBleedRows(t *testing.T) {
	t.Parallel()

	// Given a multi-row header where keyword fragments repeat in a data row
	m := parse(t, `
		<table>
			<tr><td>中标候选人</td><td>报价</td></tr>
			<tr><td>单位名称及排名</td><td>下浮率</td></tr>
			<tr><td>甲建设有限公司</td><td>8.5%</td></tr>
		</table>`)

	got := goquery.NewTableLocator().LocateCandidates(m)

	// Then the repeated header fragment is not treated as a bidder
	require.Len(t, got, 1)
	assert.Equal(t, "甲建设有限公司", got[0].Bidder)
	assert.Equal(t, "8.5%", got[0].Price)
	assert.Equal(t, bidwatch.PricePercent, got[0].Kind)
}

func TestTableLocator_RejectsImplausiblePriceCells(t *testing.T) {
	t.Parallel()

	m := parse(t, `
		<table>
			<tr><td>候选人</td><td>报价</td></tr>
			<tr><td>甲建设有限公司</td><td>报价详见附件中的相关说明材料文件内容部分</td></tr>
		</table>`)

	got := goquery.NewTableLocator().LocateCandidates(m)

	// Then the over-long free-text cell is not accepted as a price
	require.Len(t, got, 1)
	assert.Equal(t, bidwatch.PriceNotProvided, got[0].Price)
}

func TestTableLocator_NoHeaderTableIsAMiss(t *testing.T) {
	t.Parallel()

	m := parse(t, `
		<table>
			<tr><td>甲建设有限公司</td><td>100万元</td></tr>
		</table>`)

	assert.Empty(t, goquery.NewTableLocator().LocateCandidates(m))
}
