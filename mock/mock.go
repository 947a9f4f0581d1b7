// Package mock provides function-field mock implementations of the
// bidwatch service interfaces for use in tests.
package mock

import (
	"context"

	"github.com/jqin/bidwatch"
)

var _ bidwatch.FeedSource = (*FeedSource)(nil)

// FeedSource is a mock implementation of bidwatch.FeedSource.
type FeedSource struct {
	FetchLatestFn func(ctx context.Context) ([]*bidwatch.Document, error)
}

func (s *FeedSource) FetchLatest(ctx context.Context) ([]*bidwatch.Document, error) {
	return s.FetchLatestFn(ctx)
}

var _ bidwatch.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of bidwatch.Extractor.
type Extractor struct {
	ExtractFn func(doc *bidwatch.Document) *bidwatch.Extraction
}

func (e *Extractor) Extract(doc *bidwatch.Document) *bidwatch.Extraction {
	return e.ExtractFn(doc)
}

var _ bidwatch.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of bidwatch.Notifier.
type Notifier struct {
	SendFn func(ctx context.Context, message string) error
}

func (n *Notifier) Send(ctx context.Context, message string) error {
	return n.SendFn(ctx, message)
}

var _ bidwatch.Converter = (*Converter)(nil)

// Converter is a mock implementation of bidwatch.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ bidwatch.CandidateLocator = (*CandidateLocator)(nil)

// CandidateLocator is a mock implementation of bidwatch.CandidateLocator.
type CandidateLocator struct {
	NameFn             func() string
	LocateCandidatesFn func(m bidwatch.MarkupModel) []bidwatch.Candidate
}

func (l *CandidateLocator) Name() string {
	return l.NameFn()
}

func (l *CandidateLocator) LocateCandidates(m bidwatch.MarkupModel) []bidwatch.Candidate {
	return l.LocateCandidatesFn(m)
}
