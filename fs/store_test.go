package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jqin/bidwatch"
	"github.com/jqin/bidwatch/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: JSON File Store
// Collections load-all/replace-all through whole-file writes; an unwritten
// store loads as empty, and replaces never leave partial files behind.

func TestStore_UnwrittenStoreLoadsEmpty(t *testing.T) {
	t.Parallel()

	store := fs.NewStore(filepath.Join(t.TempDir(), "data"))

	docs, err := store.LoadDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)

	recs, err := store.LoadRecords(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestStore_RoundTripPreservesOrder(t *testing.T) {
	t.Parallel()

	store := fs.NewStore(t.TempDir())
	ctx := context.Background()

	docs := []*bidwatch.Document{
		{ID: "b", URL: "/n/b", Title: "乙项目", Markup: "<p>乙</p>"},
		{ID: "a", URL: "/n/a", Title: "甲项目", Markup: "<p>甲</p>"},
	}
	require.NoError(t, store.ReplaceDocuments(ctx, docs))

	got, err := store.LoadDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "乙项目", got[0].Title)
}

func TestStore_ReplaceIsWholesale(t *testing.T) {
	t.Parallel()

	store := fs.NewStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.ReplaceRecords(ctx, []*bidwatch.ParsedRecord{
		{ID: "old-1"}, {ID: "old-2"}, {ID: "old-3"},
	}))
	require.NoError(t, store.ReplaceRecords(ctx, []*bidwatch.ParsedRecord{
		{ID: "new-1"},
	}))

	got, err := store.LoadRecords(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new-1", got[0].ID)
}

func TestStore_RecordsPreserveExtractionFields(t *testing.T) {
	t.Parallel()

	store := fs.NewStore(t.TempDir())
	ctx := context.Background()

	rec := &bidwatch.ParsedRecord{
		ID:  "a",
		URL: "/n/a",
		Extracted: bidwatch.Extraction{
			ProjectName:     "某某道路工程",
			PublicityPeriod: "2024年3月1日至2024年3月5日",
			Candidates: []bidwatch.Candidate{
				{Bidder: "甲建设有限公司", Price: "356.8万元", Kind: bidwatch.PriceCurrency},
			},
			SourceURL: "https://example.com/n/a",
		},
		RawMeta: bidwatch.RawMeta{Title: "某某道路工程中标候选人公示", PublishedAt: "2024-03-01"},
	}
	require.NoError(t, store.ReplaceRecords(ctx, []*bidwatch.ParsedRecord{rec}))

	got, err := store.LoadRecords(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.Extracted, got[0].Extracted)
	assert.Equal(t, rec.RawMeta, got[0].RawMeta)
}

func TestStore_NoTempFilesLeftBehind(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := fs.NewStore(dir)
	ctx := context.Background()

	require.NoError(t, store.ReplaceDocuments(ctx, []*bidwatch.Document{{ID: "a", URL: "/n/a"}}))
	require.NoError(t, store.ReplaceDocuments(ctx, []*bidwatch.Document{{ID: "a", URL: "/n/a"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.Contains(entry.Name(), ".tmp-"), "leftover temp file %s", entry.Name())
	}
}

func TestStore_CorruptFileSurfacesInternalError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "documents.json"), []byte("{not json"), 0644))

	store := fs.NewStore(dir)
	_, err := store.LoadDocuments(context.Background())

	require.Error(t, err)
	assert.Equal(t, bidwatch.EINTERNAL, bidwatch.ErrorCode(err))
}
