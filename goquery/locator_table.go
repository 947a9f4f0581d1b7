package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/jqin/bidwatch"
)

var _ bidwatch.CandidateLocator = (*TableLocator)(nil)

// TableLocator reads bidder/price pairs out of tables that carry an explicit
// header row. It is the highest-confidence strategy in the cascade: a header
// row fixes the column layout, so subsequent rows can be read positionally
// regardless of how many columns the authoring template added.
type TableLocator struct{}

// NewTableLocator creates a new TableLocator.
func NewTableLocator() *TableLocator {
	return &TableLocator{}
}

// Header keyword groups. Column assignment is independent per group: a table
// may contribute bidders without prices or vice versa.
var (
	bidderHeaderKeywords = []string{"候选人", "投标人", "单位名称"}
	priceHeaderKeywords  = []string{"报价", "金额", "下浮率"}

	// bleedKeywords mark data rows that are really repeated header
	// fragments (merged cells, multi-row headers). A bidder cell
	// containing any of these is discarded.
	bleedKeywords = []string{
		"候选人", "投标人", "单位名称", "下浮率",
		"质量", "目标", "设计", "施工", "标准", "排名", "序号",
	}

	// priceMarkers are the characters a plausible price cell contains.
	priceMarkers = "元%％.万"
)

func (l *TableLocator) Name() string { return "table-header" }

// LocateCandidates scans every table for a header row and reads the rows
// below it using the discovered column indices.
func (l *TableLocator) LocateCandidates(m bidwatch.MarkupModel) []bidwatch.Candidate {
	var bidders, prices []string

	for _, table := range m.Tables() {
		rows := table.Rows()

		headerIdx, bidderCol, priceCol := findHeaderRow(rows)
		if headerIdx < 0 {
			continue
		}

		for _, row := range rows[headerIdx+1:] {
			cells := row.Cells()

			if bidderCol >= 0 && bidderCol < len(cells) {
				bidder := cells[bidderCol]
				if utf8.RuneCountInString(bidder) > 2 && !containsAny(bidder, bleedKeywords) {
					bidders = append(bidders, bidder)
				}
			}

			if priceCol >= 0 && priceCol < len(cells) {
				price := cells[priceCol]
				if strings.ContainsAny(price, priceMarkers) && utf8.RuneCountInString(price) < 20 {
					prices = append(prices, price)
				}
			}
		}
	}

	return bidwatch.ZipCandidates(bidders, prices)
}

// findHeaderRow returns the index of the first row whose cells contain any
// header keyword, along with the bidder and price column indices discovered
// in it (-1 when a group has no matching column).
func findHeaderRow(rows []bidwatch.Row) (headerIdx, bidderCol, priceCol int) {
	for i, row := range rows {
		bc, pc := -1, -1
		for j, cell := range row.Cells() {
			if bc < 0 && containsAny(cell, bidderHeaderKeywords) {
				bc = j
			}
			if pc < 0 && containsAny(cell, priceHeaderKeywords) {
				pc = j
			}
		}
		if bc >= 0 || pc >= 0 {
			return i, bc, pc
		}
	}
	return -1, -1, -1
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
