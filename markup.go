package bidwatch

// MarkupModel is a parsed, read-only view of an announcement body.
// Implementations must tolerate malformed markup: elements without matching
// closers are treated as auto-closed and the model degrades to a best-effort
// partial view rather than failing.
type MarkupModel interface {
	// Text returns the flattened plain-text view of the whole document,
	// with element boundaries collapsed to whitespace.
	Text() string

	// Tables returns all table elements in document order.
	Tables() []Table

	// Paragraphs returns the text content of block-level elements
	// (paragraphs, list items, table-less divs) in document order.
	Paragraphs() []string
}

// Table is a navigable table element.
type Table interface {
	Rows() []Row
}

// Row is one table row.
type Row interface {
	// Cells returns the trimmed text content of each cell in order.
	Cells() []string
}

// ModelParser builds a MarkupModel from a raw markup string.
// Parsing never fails hard; malformed input yields a partial model.
type ModelParser interface {
	Parse(markup string) MarkupModel
}

// PeriodLocator is a heuristic for finding the publicity-period string.
// An empty return value means the locator found nothing; absence is valid,
// not an error.
type PeriodLocator interface {
	LocatePeriod(m MarkupModel) string
}

// CandidateLocator is a single heuristic strategy for finding bidder/price
// pairs. Locators are pure: malformed or unusable input yields an empty
// slice, never an error. The extraction engine holds locators in a
// fixed-priority list and stops at the first non-empty result, so a locator
// must only return candidates it is structurally confident about.
type CandidateLocator interface {
	// Name identifies the strategy, for logging and tests.
	Name() string

	LocateCandidates(m MarkupModel) []Candidate
}
