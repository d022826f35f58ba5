package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdex/internal/core/domain"
)

func seedStore(t *testing.T) *memory.ChunkStore {
	t.Helper()
	store := memory.NewChunkStore()
	ctx := context.Background()

	seed := []struct {
		collection string
		content    string
		embedding  []float32
	}{
		{"acme/docs", "even", []float32{1, 0}},
		{"acme/docs", "odd", []float32{0, 1}},
		{"other/repo", "also", []float32{1, 0}},
	}
	for _, s := range seed {
		_, err := store.Upsert(ctx, &domain.Chunk{
			Collection:  s.collection,
			FilePath:    "doc.md",
			Content:     s.content,
			Embedding:   s.embedding,
			LastUpdated: time.Now(),
		})
		require.NoError(t, err)
	}
	return store
}

func TestSearch_RanksBySimilarity(t *testing.T) {
	svc := NewSearchService(seedStore(t), &stubEmbedder{})

	// "even" has even length, embeds to {1,0}.
	results, err := svc.Search(context.Background(), "even", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-6)
	assert.InDelta(t, 0.0, results[2].Similarity, 1e-6)
}

func TestSearch_CollectionFilter(t *testing.T) {
	svc := NewSearchService(seedStore(t), &stubEmbedder{})

	results, err := svc.Search(context.Background(), "even", domain.SearchOptions{
		Collections: []string{"other/repo"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "other/repo", results[0].Chunk.Collection)
}

func TestSearch_LimitApplied(t *testing.T) {
	svc := NewSearchService(seedStore(t), &stubEmbedder{})

	results, err := svc.Search(context.Background(), "even", domain.SearchOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearch_BlankQuery(t *testing.T) {
	svc := NewSearchService(seedStore(t), &stubEmbedder{})

	results, err := svc.Search(context.Background(), "   \n\t  ", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_MissingDependencies(t *testing.T) {
	_, err := NewSearchService(nil, &stubEmbedder{}).
		Search(context.Background(), "query", domain.SearchOptions{})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = NewSearchService(memory.NewChunkStore(), nil).
		Search(context.Background(), "query", domain.SearchOptions{})
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}
