package bidwatch

import "strings"

// PriceNotProvided is the sentinel display string used when a bidder was
// located without a corresponding price.
const PriceNotProvided = "未提供"

// PriceKind classifies what a price display string appears to be.
// Classification is advisory: the original string is always preserved and
// numeric normalization is a rendering concern, not an extraction concern.
type PriceKind string

const (
	PriceCurrency PriceKind = "currency"
	PricePercent  PriceKind = "percent"
	PriceUnparsed PriceKind = "unparsed"
)

// Candidate is one (bidder, price) pair in ranked order.
// Price is the unnormalized display string as it appeared in the document;
// it may be a currency amount, a percentage discount rate, or free text.
type Candidate struct {
	Bidder string    `json:"bidder"`
	Price  string    `json:"price"`
	Kind   PriceKind `json:"kind"`
}

// Extraction is the structured result of running the extraction cascade on
// one document. Every field is always present (possibly empty) so consumers
// never need defensive nil-handling beyond empty-string/empty-slice. An
// extraction with zero candidates is valid output, not an error.
type Extraction struct {
	ProjectName     string      `json:"projectName"`
	PublicityPeriod string      `json:"publicityPeriod"`
	Candidates      []Candidate `json:"candidates"`
	SourceURL       string      `json:"sourceUrl"`
}

// ClassifyPrice infers the kind of a price display string.
func ClassifyPrice(price string) PriceKind {
	if price == "" || price == PriceNotProvided {
		return PriceUnparsed
	}
	if strings.ContainsAny(price, "%％") {
		return PricePercent
	}
	if strings.ContainsAny(price, "0123456789") &&
		(strings.Contains(price, "元") || strings.Contains(price, "万") || strings.Contains(price, ".")) {
		return PriceCurrency
	}
	return PriceUnparsed
}

// ZipCandidates pairs independently located bidders and prices by position.
// Bidders without a price get the PriceNotProvided sentinel; excess prices
// are dropped rather than invented into phantom bidders.
func ZipCandidates(bidders, prices []string) []Candidate {
	candidates := make([]Candidate, 0, len(bidders))
	for i, bidder := range bidders {
		price := PriceNotProvided
		if i < len(prices) {
			price = prices[i]
		}
		candidates = append(candidates, Candidate{
			Bidder: bidder,
			Price:  price,
			Kind:   ClassifyPrice(price),
		})
	}
	return candidates
}

// DedupeCandidates removes candidates with repeated bidder names,
// preserving first-seen order.
func DedupeCandidates(candidates []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.Bidder]; ok {
			continue
		}
		seen[c.Bidder] = struct{}{}
		out = append(out, c)
	}
	return out
}
