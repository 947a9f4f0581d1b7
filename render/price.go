package render

import (
	"strconv"
	"strings"

	"github.com/jqin/bidwatch"
)

// FormatPrice reformats a price display string for notification output.
// Percentage rates pass through untouched; currency amounts above the
// configured threshold switch to 万元 with thousands grouping; anything
// that does not parse is shown verbatim.
func (r *Renderer) FormatPrice(c bidwatch.Candidate) string {
	if c.Kind != bidwatch.PriceCurrency {
		return c.Price
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' {
			return r
		}
		return -1
	}, c.Price)
	amount, err := strconv.ParseFloat(digits, 64)
	if err != nil || amount <= 0 {
		return c.Price
	}

	// Amounts already quoted in 万 are normalized to yuan first.
	if strings.Contains(c.Price, "万") {
		amount *= 10000
	}

	threshold := r.Options.TenThousandThreshold
	if threshold <= 0 {
		threshold = DefaultTenThousandThreshold
	}

	if amount > threshold {
		return groupDigits(amount/10000) + "万元"
	}
	return groupDigits(amount) + "元"
}

// groupDigits formats an amount with two decimals and comma separators.
func groupDigits(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)

	intPart, fracPart, _ := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return intPart + "." + fracPart
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + "." + fracPart
}
