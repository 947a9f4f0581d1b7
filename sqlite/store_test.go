package sqlite_test

import (
	"context"
	"testing"

	"github.com/jqin/bidwatch"
	"github.com/jqin/bidwatch/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return sqlite.NewStore(db)
}

// Story: SQLite Store
// Same load-all/replace-all contract as the file store, with replaces
// running in one transaction.

func TestStore_EmptyDatabaseLoadsEmpty(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	docs, err := store.LoadDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)

	recs, err := store.LoadRecords(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestStore_DocumentsRoundTrip(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	ctx := context.Background()

	docs := []*bidwatch.Document{
		{ID: "b", URL: "/n/b", Title: "乙项目", PublishedAt: "2024-03-02", Markup: "<p>乙</p>", ContentHash: "ffee"},
		{ID: "a", URL: "/n/a", Title: "甲项目", PublishedAt: "2024-03-01", Markup: "<p>甲</p>", ContentHash: "aabb"},
	}
	require.NoError(t, store.ReplaceDocuments(ctx, docs))

	got, err := store.LoadDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, docs[0], got[0])
	assert.Equal(t, docs[1], got[1])
}

func TestStore_RecordsRoundTrip(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	ctx := context.Background()

	rec := &bidwatch.ParsedRecord{
		ID:  "a",
		URL: "/n/a",
		Extracted: bidwatch.Extraction{
			ProjectName:     "某某道路工程",
			PublicityPeriod: "2024年3月1日至2024年3月5日",
			Candidates: []bidwatch.Candidate{
				{Bidder: "甲建设有限公司", Price: "356.8万元", Kind: bidwatch.PriceCurrency},
				{Bidder: "乙市政集团", Price: bidwatch.PriceNotProvided, Kind: bidwatch.PriceUnparsed},
			},
			SourceURL: "https://example.com/n/a",
		},
		RawMeta: bidwatch.RawMeta{Title: "某某道路工程中标候选人公示", PublishedAt: "2024-03-01"},
	}
	require.NoError(t, store.ReplaceRecords(ctx, []*bidwatch.ParsedRecord{rec}))

	got, err := store.LoadRecords(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec, got[0])
}

func TestStore_ReplaceIsWholesale(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceRecords(ctx, []*bidwatch.ParsedRecord{
		{ID: "old-1"}, {ID: "old-2"},
	}))
	require.NoError(t, store.ReplaceRecords(ctx, []*bidwatch.ParsedRecord{
		{ID: "new-1"},
	}))

	got, err := store.LoadRecords(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new-1", got[0].ID)
}

func TestStore_EmptyCandidatesSurviveRoundTrip(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceRecords(ctx, []*bidwatch.ParsedRecord{{ID: "a"}}))

	got, err := store.LoadRecords(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Extracted.Candidates)
}
