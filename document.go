package bidwatch

import "context"

// Document represents a single announcement as received from the feed.
// It is immutable once fetched and never deleted; identity is the feed's
// id with the url as a secondary identity key (a match on either means
// the same document).
type Document struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt"`
	Markup      string `json:"markup"`
	ContentHash string `json:"contentHash"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ID == "" && d.URL == "" {
		return Errorf(EINVALID, "document requires an id or a url")
	}
	return nil
}

// RawMeta carries the feed metadata preserved alongside a parsed record
// so the renderer never needs to re-join against the raw store.
type RawMeta struct {
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt"`
}

// ParsedRecord is the persisted result of extracting one Document.
// Exactly one ParsedRecord exists per Document; re-extraction replaces
// it wholesale rather than appending.
type ParsedRecord struct {
	ID        string     `json:"id"`
	URL       string     `json:"url"`
	Extracted Extraction `json:"extracted"`
	RawMeta   RawMeta    `json:"rawMeta"`
}

// Store persists the two ordered collections: raw documents and parsed
// records, logically joined by document id. Implementations only provide
// load-all/replace-all semantics; a replace must be atomic (readers see
// either the old collection or the new one, never a partial write).
//
// A Store is a single-writer resource. Concurrent ingestion cycles against
// the same store must be serialized by the caller.
type Store interface {
	// LoadDocuments returns all raw documents in insertion order.
	// A store that has never been written loads as empty, not as an error.
	LoadDocuments(ctx context.Context) ([]*Document, error)

	// ReplaceDocuments atomically replaces the raw document collection.
	ReplaceDocuments(ctx context.Context, docs []*Document) error

	// LoadRecords returns all parsed records in insertion order.
	LoadRecords(ctx context.Context) ([]*ParsedRecord, error)

	// ReplaceRecords atomically replaces the parsed record collection.
	ReplaceRecords(ctx context.Context, recs []*ParsedRecord) error
}

// FeedSource retrieves the latest batch of announcement documents.
// Implementations hide transport, retry, and pagination concerns.
type FeedSource interface {
	FetchLatest(ctx context.Context) ([]*Document, error)
}

// Extractor produces a structured extraction from one document.
// Extraction never fails: documents with no recoverable structure yield
// a record with empty fields.
type Extractor interface {
	Extract(doc *Document) *Extraction
}

// Notifier delivers a rendered notification message.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// Converter transforms HTML content into Markdown. Used by the renderer
// to include a readable body excerpt when extraction found no candidates.
type Converter interface {
	Convert(html string) (string, error)
}
