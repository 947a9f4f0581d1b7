package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/jqin/bidwatch"
)

var _ bidwatch.CandidateLocator = (*ShapeLocator)(nil)

// ShapeLocator is the fallback for tables that lack explicit column headers.
// A row is treated as a candidate row when at least two of its cells look
// like distinct fields (minimum length heuristic); the first cell is assumed
// to be the bidder and the first later cell carrying a digit plus a
// currency/percent marker is assumed to be the price.
type ShapeLocator struct{}

// NewShapeLocator creates a new ShapeLocator.
func NewShapeLocator() *ShapeLocator {
	return &ShapeLocator{}
}

// minFieldRunes is the cell length below which a cell is considered
// decoration (rank numbers, empty spacers) rather than a field.
const minFieldRunes = 3

func (l *ShapeLocator) Name() string { return "table-shape" }

func (l *ShapeLocator) LocateCandidates(m bidwatch.MarkupModel) []bidwatch.Candidate {
	var candidates []bidwatch.Candidate

	for _, table := range m.Tables() {
		rows := table.Rows()

		// Tables with a recognizable header belong to the TableLocator;
		// re-reading them here would double-count under lower confidence.
		if headerIdx, _, _ := findHeaderRow(rows); headerIdx >= 0 {
			continue
		}

		for _, row := range rows {
			cells := row.Cells()
			if countFields(cells) < 2 {
				continue
			}

			bidder := cells[0]
			if utf8.RuneCountInString(bidder) < minFieldRunes || containsAny(bidder, bleedKeywords) {
				continue
			}

			price := bidwatch.PriceNotProvided
			for _, cell := range cells[1:] {
				if looksLikePrice(cell) {
					price = cell
					break
				}
			}

			candidates = append(candidates, bidwatch.Candidate{
				Bidder: bidder,
				Price:  price,
				Kind:   bidwatch.ClassifyPrice(price),
			})
		}
	}

	return candidates
}

func countFields(cells []string) int {
	n := 0
	for _, cell := range cells {
		if utf8.RuneCountInString(cell) >= minFieldRunes {
			n++
		}
	}
	return n
}

func looksLikePrice(cell string) bool {
	return strings.ContainsAny(cell, "0123456789") &&
		strings.ContainsAny(cell, "元%％万") &&
		utf8.RuneCountInString(cell) < 20
}
