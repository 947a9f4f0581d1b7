package ingest

import (
	"github.com/jqin/bidwatch"
	"github.com/jqin/bidwatch/bloom"
)

// identityIndex implements the loose identity test over stored documents:
// a document is a duplicate iff its id OR its url matches an existing one.
// The disjunctive match deliberately tolerates feed re-numbering, where the
// same announcement reappears under a fresh id at the same url (or vice
// versa). Ambiguous matches are conservatively treated as "existing".
//
// A Bloom filter fronts the two exact maps so the common case (an old
// document seen again on every poll) resolves without map lookups.
type identityIndex struct {
	filter *bloom.Filter
	byID   map[string]struct{}
	byURL  map[string]struct{}
}

func newIdentityIndex(docs []*bidwatch.Document) *identityIndex {
	n := uint(len(docs))
	if n < 1024 {
		n = 1024
	}
	idx := &identityIndex{
		filter: bloom.NewFilter(2*n, 0.01),
		byID:   make(map[string]struct{}, len(docs)),
		byURL:  make(map[string]struct{}, len(docs)),
	}
	for _, doc := range docs {
		idx.add(doc)
	}
	return idx
}

// seen reports whether either identity key matches an indexed document.
func (idx *identityIndex) seen(doc *bidwatch.Document) bool {
	if doc.ID != "" && idx.filter.Test(doc.ID) {
		if _, ok := idx.byID[doc.ID]; ok {
			return true
		}
	}
	if doc.URL != "" && idx.filter.Test(doc.URL) {
		if _, ok := idx.byURL[doc.URL]; ok {
			return true
		}
	}
	return false
}

func (idx *identityIndex) add(doc *bidwatch.Document) {
	if doc.ID != "" {
		idx.byID[doc.ID] = struct{}{}
		idx.filter.Add(doc.ID)
	}
	if doc.URL != "" {
		idx.byURL[doc.URL] = struct{}{}
		idx.filter.Add(doc.URL)
	}
}
