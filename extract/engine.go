// Package extract provides the extraction engine: a fixed-priority cascade
// of field locators run over one announcement document. The cascade is
// ordered from highest structural confidence (explicit table headers) to
// lowest (prose pattern matching); later stages are degraded fallbacks and
// never override an earlier non-empty result.
package extract

import (
	"log/slog"
	"strings"

	"github.com/jqin/bidwatch"
)

// TitleBoilerplate is the fixed announcement-title suffix stripped to derive
// the project name.
const TitleBoilerplate = "中标候选人公示"

// Ensure Engine implements bidwatch.Extractor at compile time.
var _ bidwatch.Extractor = (*Engine)(nil)

// Engine orchestrates the locator cascade over a single document.
//
// Extract never fails: a fault inside any locator is contained at that
// locator's boundary and treated as "locator produced nothing", so a
// malformed document degrades to an empty or partial extraction.
type Engine struct {
	// Parser builds the markup model from the document body.
	Parser bidwatch.ModelParser

	// Period locates the publicity window. Optional.
	Period bidwatch.PeriodLocator

	// Cascade holds the candidate locators in fixed priority order.
	// The first locator returning a non-empty result wins.
	Cascade []bidwatch.CandidateLocator

	// Origin is prefixed to path-only document URLs (leading "/").
	Origin string

	// Logger, if set, records which strategy produced each result.
	Logger *slog.Logger
}

// Extract produces the structured record for one document.
func (e *Engine) Extract(doc *bidwatch.Document) *bidwatch.Extraction {
	model := e.Parser.Parse(doc.Markup)

	candidates, strategy := e.locateCandidates(model)

	ext := &bidwatch.Extraction{
		ProjectName:     projectName(doc.Title),
		PublicityPeriod: e.locatePeriod(model),
		Candidates:      bidwatch.DedupeCandidates(candidates),
		SourceURL:       e.resolveURL(doc.URL),
	}

	if e.Logger != nil {
		e.Logger.Debug("document extracted",
			"id", doc.ID,
			"strategy", strategy,
			"candidates", len(ext.Candidates),
			"period", ext.PublicityPeriod != "",
		)
	}
	return ext
}

// locateCandidates runs the cascade, stopping at the first non-empty result.
func (e *Engine) locateCandidates(model bidwatch.MarkupModel) (candidates []bidwatch.Candidate, strategy string) {
	for _, locator := range e.Cascade {
		if result := safeLocate(locator, model); len(result) > 0 {
			return result, locator.Name()
		}
	}
	return nil, "none"
}

func (e *Engine) locatePeriod(model bidwatch.MarkupModel) (period string) {
	if e.Period == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			period = ""
		}
	}()
	return e.Period.LocatePeriod(model)
}

// safeLocate contains locator faults at the strategy boundary so the engine
// can proceed to the next-priority locator.
func safeLocate(locator bidwatch.CandidateLocator, model bidwatch.MarkupModel) (candidates []bidwatch.Candidate) {
	defer func() {
		if recover() != nil {
			candidates = nil
		}
	}()
	return locator.LocateCandidates(model)
}

// projectName strips the announcement boilerplate suffix from the title.
// A title that is nothing but boilerplate falls back to the raw title.
func projectName(title string) string {
	name := strings.TrimSpace(strings.ReplaceAll(title, TitleBoilerplate, ""))
	if name == "" {
		return title
	}
	return name
}

// resolveURL prefixes path-only URLs with the configured site origin.
func (e *Engine) resolveURL(url string) string {
	if strings.HasPrefix(url, "/") {
		return strings.TrimRight(e.Origin, "/") + url
	}
	return url
}
