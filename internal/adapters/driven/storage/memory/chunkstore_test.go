package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex/internal/core/domain"
)

func testChunk(collection, filePath, content string, embedding []float32) *domain.Chunk {
	return &domain.Chunk{
		Collection:  collection,
		FilePath:    filePath,
		Content:     content,
		Embedding:   embedding,
		LastUpdated: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestUpsert_Idempotent(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	firstID, err := store.Upsert(ctx, testChunk("a/b", "README.md", "X", []float32{1, 0}))
	require.NoError(t, err)

	secondID, err := store.Upsert(ctx, testChunk("a/b", "README.md", "X", []float32{0, 1}))
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	chunks, err := store.ListByCollection(ctx, "a/b")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, []float32{0, 1}, chunks[0].Embedding)
}

func TestUpsert_Validation(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	_, err := store.Upsert(ctx, testChunk("a/b", "doc.md", "   ", []float32{1, 0}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = store.Upsert(ctx, testChunk("a/b", "doc.md", "content", nil))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = store.Upsert(ctx, testChunk("a/b", "doc.md", "content", []float32{1, 0}))
	require.NoError(t, err)
	_, err = store.Upsert(ctx, testChunk("a/b", "doc.md", "other", []float32{1, 0, 0}))
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestDeleteCollection_ThenListEmpty(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	_, err := store.Upsert(ctx, testChunk("a/b", "doc.md", "content", []float32{1, 0}))
	require.NoError(t, err)

	require.NoError(t, store.DeleteCollection(ctx, "a/b"))

	chunks, err := store.ListByCollection(ctx, "a/b")
	require.NoError(t, err)
	assert.Empty(t, chunks)

	// Unknown collection delete is a no-op.
	assert.NoError(t, store.DeleteCollection(ctx, "missing/repo"))
}

func TestStats_PerCollection(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	for _, content := range []string{"one", "two", "three"} {
		_, err := store.Upsert(ctx, testChunk("a/b", "doc.md", content, []float32{1, 0}))
		require.NoError(t, err)
	}
	_, err := store.Upsert(ctx, testChunk("c/d", "doc.md", "only", []float32{0, 1}))
	require.NoError(t, err)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "a/b", stats[0].Collection)
	assert.Equal(t, 3, stats[0].ChunkCount)
	assert.Equal(t, "c/d", stats[1].Collection)
	assert.Equal(t, 1, stats[1].ChunkCount)
}

func TestSearchSimilar_OrderingAndFilter(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	_, err := store.Upsert(ctx, testChunk("a/b", "1.md", "exact", []float32{1, 0}))
	require.NoError(t, err)
	_, err = store.Upsert(ctx, testChunk("a/b", "2.md", "orthogonal", []float32{0, 1}))
	require.NoError(t, err)
	_, err = store.Upsert(ctx, testChunk("c/d", "3.md", "other collection", []float32{1, 0}))
	require.NoError(t, err)

	results, err := store.SearchSimilar(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "exact", results[0].Chunk.Content)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-6)

	filtered, err := store.SearchSimilar(ctx, []float32{1, 0}, 10, "c/d")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "c/d", filtered[0].Chunk.Collection)
}

func TestClosedStoreFails(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()
	require.NoError(t, store.Close())

	_, err := store.Upsert(ctx, testChunk("a/b", "doc.md", "content", []float32{1, 0}))
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = store.ListByCollection(ctx, "a/b")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = store.Stats(ctx)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
