// Package fs provides a JSON-file implementation of bidwatch.Store.
// Each collection lives in one file; a replace writes to a temporary file
// in the same directory and renames it over the target, so readers see
// either the old collection or the new one, never a partial write.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jqin/bidwatch"
)

// Collection file names within the data directory.
const (
	documentsFile = "documents.json"
	recordsFile   = "records.json"
)

// Ensure Store implements bidwatch.Store at compile time.
var _ bidwatch.Store = (*Store)(nil)

// Store persists the raw and parsed collections as JSON files in a directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. The directory is created on first
// write; a directory that has never been written loads as empty collections.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) LoadDocuments(ctx context.Context) ([]*bidwatch.Document, error) {
	var docs []*bidwatch.Document
	if err := s.load(documentsFile, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *Store) ReplaceDocuments(ctx context.Context, docs []*bidwatch.Document) error {
	if docs == nil {
		docs = []*bidwatch.Document{}
	}
	return s.replace(documentsFile, docs)
}

func (s *Store) LoadRecords(ctx context.Context) ([]*bidwatch.ParsedRecord, error) {
	var recs []*bidwatch.ParsedRecord
	if err := s.load(recordsFile, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *Store) ReplaceRecords(ctx context.Context, recs []*bidwatch.ParsedRecord) error {
	if recs == nil {
		recs = []*bidwatch.ParsedRecord{}
	}
	return s.replace(recordsFile, recs)
}

func (s *Store) load(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return bidwatch.Errorf(bidwatch.EUNAVAILABLE, "read %s: %v", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return bidwatch.Errorf(bidwatch.EINTERNAL, "decode %s: %v", name, err)
	}
	return nil
}

// replace writes v to a temp file in the target directory and renames it
// over the final name. Rename within one directory is atomic on POSIX
// filesystems.
func (s *Store) replace(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return bidwatch.Errorf(bidwatch.EUNAVAILABLE, "create data dir: %v", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return bidwatch.Errorf(bidwatch.EINTERNAL, "encode %s: %v", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return bidwatch.Errorf(bidwatch.EUNAVAILABLE, "create temp file: %v", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return bidwatch.Errorf(bidwatch.EUNAVAILABLE, "write %s: %v", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return bidwatch.Errorf(bidwatch.EUNAVAILABLE, "close %s: %v", name, err)
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return bidwatch.Errorf(bidwatch.EUNAVAILABLE, "replace %s: %v", name, err)
	}
	return nil
}
