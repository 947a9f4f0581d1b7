package bidwatch_test

import (
	"errors"
	"testing"

	"github.com/jqin/bidwatch"
	"github.com/stretchr/testify/assert"
)

// Story: Typed Application Errors
// Error codes travel with errors so callers can branch on failure kind.

func TestErrorCode_ApplicationError(t *testing.T) {
	t.Parallel()

	err := bidwatch.Errorf(bidwatch.ENOTFOUND, "record not found")
	assert.Equal(t, bidwatch.ENOTFOUND, bidwatch.ErrorCode(err))
	assert.Equal(t, "record not found", bidwatch.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")
	assert.Equal(t, bidwatch.EINTERNAL, bidwatch.ErrorCode(err))
	assert.Equal(t, "Internal error.", bidwatch.ErrorMessage(err))
}

func TestErrorCode_Nil(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", bidwatch.ErrorCode(nil))
	assert.Equal(t, "", bidwatch.ErrorMessage(nil))
}

// Story: Candidate Pairing Policy
// Bidders and prices located independently are zipped by position.

func TestZipCandidates_EqualCounts(t *testing.T) {
	t.Parallel()

	got := bidwatch.ZipCandidates(
		[]string{"甲公司", "乙公司"},
		[]string{"1,234.00元", "5.2%"},
	)

	assert.Equal(t, []bidwatch.Candidate{
		{Bidder: "甲公司", Price: "1,234.00元", Kind: bidwatch.PriceCurrency},
		{Bidder: "乙公司", Price: "5.2%", Kind: bidwatch.PricePercent},
	}, got)
}

func TestZipCandidates_MorePricesThanBidders(t *testing.T) {
	t.Parallel()

	// Excess prices are ignored, never invented into phantom bidders.
	got := bidwatch.ZipCandidates([]string{"甲公司"}, []string{"100元", "200元"})

	assert.Len(t, got, 1)
	assert.Equal(t, "100元", got[0].Price)
}

func TestZipCandidates_MoreBiddersThanPrices(t *testing.T) {
	t.Parallel()

	got := bidwatch.ZipCandidates([]string{"甲公司", "乙公司"}, []string{"100元"})

	assert.Len(t, got, 2)
	assert.Equal(t, bidwatch.PriceNotProvided, got[1].Price)
	assert.Equal(t, bidwatch.PriceUnparsed, got[1].Kind)
}

func TestDedupeCandidates_PreservesFirstSeenOrder(t *testing.T) {
	t.Parallel()

	got := bidwatch.DedupeCandidates([]bidwatch.Candidate{
		{Bidder: "甲公司", Price: "100元"},
		{Bidder: "乙公司", Price: "200元"},
		{Bidder: "甲公司", Price: "300元"},
	})

	assert.Len(t, got, 2)
	assert.Equal(t, "甲公司", got[0].Bidder)
	assert.Equal(t, "100元", got[0].Price)
	assert.Equal(t, "乙公司", got[1].Bidder)
}

// Story: Price Classification
// The display string is preserved; classification is advisory only.

func TestClassifyPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		price string
		want  bidwatch.PriceKind
	}{
		{"1,234,567.00元", bidwatch.PriceCurrency},
		{"356.8万元", bidwatch.PriceCurrency},
		{"8.5%", bidwatch.PricePercent},
		{"下浮10％", bidwatch.PricePercent},
		{"详见附件", bidwatch.PriceUnparsed},
		{bidwatch.PriceNotProvided, bidwatch.PriceUnparsed},
		{"", bidwatch.PriceUnparsed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bidwatch.ClassifyPrice(tt.price), "price %q", tt.price)
	}
}
