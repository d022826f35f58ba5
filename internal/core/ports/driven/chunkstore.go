package driven

import (
	"context"

	"github.com/custodia-labs/docdex/internal/core/domain"
)

// ChunkStore persists chunks with their embeddings and answers similarity
// queries over them. It is the sole shared mutable resource in the core:
// writes are serialised by the implementation, reads see a consistent
// snapshot per call.
type ChunkStore interface {
	// Upsert inserts or replaces the row matching the chunk's uniqueness
	// key (collection, file path, content) together with its embedding,
	// as one atomic unit. Returns the row id, which is stable across
	// re-upserts of the same key.
	//
	// Chunks with empty post-trim content are rejected with
	// domain.ErrInvalidInput. Embeddings whose length differs from the
	// dimensionality fixed at the store's first write are rejected with
	// domain.ErrDimensionMismatch.
	Upsert(ctx context.Context, chunk *domain.Chunk) (int64, error)

	// ListByCollection returns all chunks for a collection, newest
	// LastUpdated first. An unknown collection yields an empty slice,
	// not an error.
	ListByCollection(ctx context.Context, collection string) ([]domain.Chunk, error)

	// DeleteCollection removes all chunks (and their embeddings) for a
	// collection. Deleting an empty or unknown collection is a no-op.
	DeleteCollection(ctx context.Context, collection string) error

	// Stats returns one CollectionStats per distinct collection,
	// ordered by collection identifier.
	Stats(ctx context.Context) ([]domain.CollectionStats, error)

	// SearchSimilar scores stored chunks against the query embedding by
	// cosine similarity and returns the top-K, descending. When
	// collections is non-empty, only chunks in those collections are
	// candidates. Zero-magnitude vectors score 0.
	SearchSimilar(
		ctx context.Context, query []float32, topK int, collections ...string,
	) ([]domain.SearchResult, error)

	// Close releases the underlying persistence handle.
	Close() error
}
