package sqlite

import (
	"context"
	"encoding/json"

	"github.com/jqin/bidwatch"
)

// Compile-time interface verification.
var _ bidwatch.Store = (*Store)(nil)

// Store implements bidwatch.Store using SQLite. Replace-all operations run
// in one transaction, so readers observe either the old collection or the
// new one.
type Store struct {
	db *DB
}

// NewStore creates a new Store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

func (s *Store) LoadDocuments(ctx context.Context) ([]*bidwatch.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, title, published_at, markup, content_hash
		FROM documents
		ORDER BY position
	`)
	if err != nil {
		return nil, bidwatch.Errorf(bidwatch.EUNAVAILABLE, "load documents: %v", err)
	}
	defer rows.Close()

	var docs []*bidwatch.Document
	for rows.Next() {
		var doc bidwatch.Document
		if err := rows.Scan(&doc.ID, &doc.URL, &doc.Title, &doc.PublishedAt,
			&doc.Markup, &doc.ContentHash); err != nil {
			return nil, bidwatch.Errorf(bidwatch.EINTERNAL, "scan document: %v", err)
		}
		docs = append(docs, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, bidwatch.Errorf(bidwatch.EUNAVAILABLE, "load documents: %v", err)
	}
	return docs, nil
}

func (s *Store) ReplaceDocuments(ctx context.Context, docs []*bidwatch.Document) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return bidwatch.Errorf(bidwatch.EUNAVAILABLE, "begin: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return bidwatch.Errorf(bidwatch.EUNAVAILABLE, "clear documents: %v", err)
	}
	for i, doc := range docs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO documents (position, id, url, title, published_at, markup, content_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, i, doc.ID, doc.URL, doc.Title, doc.PublishedAt, doc.Markup, doc.ContentHash); err != nil {
			return bidwatch.Errorf(bidwatch.EUNAVAILABLE, "insert document: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return bidwatch.Errorf(bidwatch.EUNAVAILABLE, "commit: %v", err)
	}
	return nil
}

func (s *Store) LoadRecords(ctx context.Context) ([]*bidwatch.ParsedRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, project_name, publicity_period, candidates, source_url, raw_title, raw_published_at
		FROM records
		ORDER BY position
	`)
	if err != nil {
		return nil, bidwatch.Errorf(bidwatch.EUNAVAILABLE, "load records: %v", err)
	}
	defer rows.Close()

	var recs []*bidwatch.ParsedRecord
	for rows.Next() {
		var rec bidwatch.ParsedRecord
		var candidates string
		if err := rows.Scan(&rec.ID, &rec.URL, &rec.Extracted.ProjectName,
			&rec.Extracted.PublicityPeriod, &candidates, &rec.Extracted.SourceURL,
			&rec.RawMeta.Title, &rec.RawMeta.PublishedAt); err != nil {
			return nil, bidwatch.Errorf(bidwatch.EINTERNAL, "scan record: %v", err)
		}
		if err := json.Unmarshal([]byte(candidates), &rec.Extracted.Candidates); err != nil {
			return nil, bidwatch.Errorf(bidwatch.EINTERNAL, "decode candidates: %v", err)
		}
		recs = append(recs, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, bidwatch.Errorf(bidwatch.EUNAVAILABLE, "load records: %v", err)
	}
	return recs, nil
}

func (s *Store) ReplaceRecords(ctx context.Context, recs []*bidwatch.ParsedRecord) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return bidwatch.Errorf(bidwatch.EUNAVAILABLE, "begin: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return bidwatch.Errorf(bidwatch.EUNAVAILABLE, "clear records: %v", err)
	}
	for i, rec := range recs {
		candidates := rec.Extracted.Candidates
		if candidates == nil {
			candidates = []bidwatch.Candidate{}
		}
		encoded, err := json.Marshal(candidates)
		if err != nil {
			return bidwatch.Errorf(bidwatch.EINTERNAL, "encode candidates: %v", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO records (position, id, url, project_name, publicity_period, candidates, source_url, raw_title, raw_published_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, i, rec.ID, rec.URL, rec.Extracted.ProjectName, rec.Extracted.PublicityPeriod,
			string(encoded), rec.Extracted.SourceURL, rec.RawMeta.Title, rec.RawMeta.PublishedAt); err != nil {
			return bidwatch.Errorf(bidwatch.EUNAVAILABLE, "insert record: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return bidwatch.Errorf(bidwatch.EUNAVAILABLE, "commit: %v", err)
	}
	return nil
}
