package mock

import (
	"context"

	"github.com/jqin/bidwatch"
)

var _ bidwatch.Store = (*Store)(nil)

// Store is a mock implementation of bidwatch.Store.
type Store struct {
	LoadDocumentsFn    func(ctx context.Context) ([]*bidwatch.Document, error)
	ReplaceDocumentsFn func(ctx context.Context, docs []*bidwatch.Document) error
	LoadRecordsFn      func(ctx context.Context) ([]*bidwatch.ParsedRecord, error)
	ReplaceRecordsFn   func(ctx context.Context, recs []*bidwatch.ParsedRecord) error
}

func (s *Store) LoadDocuments(ctx context.Context) ([]*bidwatch.Document, error) {
	return s.LoadDocumentsFn(ctx)
}

func (s *Store) ReplaceDocuments(ctx context.Context, docs []*bidwatch.Document) error {
	return s.ReplaceDocumentsFn(ctx, docs)
}

func (s *Store) LoadRecords(ctx context.Context) ([]*bidwatch.ParsedRecord, error) {
	return s.LoadRecordsFn(ctx)
}

func (s *Store) ReplaceRecords(ctx context.Context, recs []*bidwatch.ParsedRecord) error {
	return s.ReplaceRecordsFn(ctx, recs)
}

// MemStore is an in-memory bidwatch.Store for tests that need real
// load/replace semantics rather than per-call hooks.
type MemStore struct {
	Documents []*bidwatch.Document
	Records   []*bidwatch.ParsedRecord

	// FailReplaceRecords, if set, makes the next ReplaceRecords call fail.
	FailReplaceRecords error
}

var _ bidwatch.Store = (*MemStore)(nil)

func (s *MemStore) LoadDocuments(ctx context.Context) ([]*bidwatch.Document, error) {
	return append([]*bidwatch.Document(nil), s.Documents...), nil
}

func (s *MemStore) ReplaceDocuments(ctx context.Context, docs []*bidwatch.Document) error {
	s.Documents = append([]*bidwatch.Document(nil), docs...)
	return nil
}

func (s *MemStore) LoadRecords(ctx context.Context) ([]*bidwatch.ParsedRecord, error) {
	return append([]*bidwatch.ParsedRecord(nil), s.Records...), nil
}

func (s *MemStore) ReplaceRecords(ctx context.Context, recs []*bidwatch.ParsedRecord) error {
	if err := s.FailReplaceRecords; err != nil {
		s.FailReplaceRecords = nil
		return err
	}
	s.Records = append([]*bidwatch.ParsedRecord(nil), recs...)
	return nil
}
