// Package memory provides in-memory implementations of the storage ports.
// Used in tests and as a lightweight store for ephemeral sessions; semantics
// match the SQLite adapter.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/docdex/internal/core/domain"
	"github.com/custodia-labs/docdex/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory ChunkStore.
type ChunkStore struct {
	mu         sync.RWMutex
	nextID     int64
	chunks     map[int64]domain.Chunk
	byKey      map[chunkKey]int64
	dimensions int
	closed     bool
}

// chunkKey is the uniqueness key for a chunk row.
type chunkKey struct {
	collection string
	filePath   string
	content    string
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		nextID: 1,
		chunks: make(map[int64]domain.Chunk),
		byKey:  make(map[chunkKey]int64),
	}
}

// Upsert inserts or replaces the row matching the chunk's uniqueness key.
func (s *ChunkStore) Upsert(_ context.Context, chunk *domain.Chunk) (int64, error) {
	if err := chunk.Validate(); err != nil {
		return 0, fmt.Errorf("validating chunk %s/%s: %w", chunk.Collection, chunk.FilePath, err)
	}
	if len(chunk.Embedding) == 0 {
		return 0, fmt.Errorf("upserting chunk %s/%s: empty embedding: %w",
			chunk.Collection, chunk.FilePath, domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, domain.ErrStoreUnavailable
	}

	if s.dimensions == 0 {
		s.dimensions = len(chunk.Embedding)
	} else if len(chunk.Embedding) != s.dimensions {
		return 0, fmt.Errorf("upserting chunk %s/%s: %w: got %d, store uses %d",
			chunk.Collection, chunk.FilePath, domain.ErrDimensionMismatch,
			len(chunk.Embedding), s.dimensions)
	}

	key := chunkKey{chunk.Collection, chunk.FilePath, chunk.Content}
	id, exists := s.byKey[key]
	if !exists {
		id = s.nextID
		s.nextID++
		s.byKey[key] = id
	}

	stored := *chunk
	stored.ID = id
	stored.Embedding = append([]float32(nil), chunk.Embedding...)
	s.chunks[id] = stored

	chunk.ID = id
	return id, nil
}

// ListByCollection returns all chunks for a collection, newest first.
func (s *ChunkStore) ListByCollection(_ context.Context, collection string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, domain.ErrStoreUnavailable
	}

	var chunks []domain.Chunk
	for _, chunk := range s.chunks {
		if chunk.Collection == collection {
			chunks = append(chunks, chunk)
		}
	}

	sort.SliceStable(chunks, func(i, j int) bool {
		if !chunks[i].LastUpdated.Equal(chunks[j].LastUpdated) {
			return chunks[i].LastUpdated.After(chunks[j].LastUpdated)
		}
		return chunks[i].ID < chunks[j].ID
	})

	return chunks, nil
}

// DeleteCollection removes all chunks for a collection.
func (s *ChunkStore) DeleteCollection(_ context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrStoreUnavailable
	}

	for id, chunk := range s.chunks {
		if chunk.Collection == collection {
			delete(s.chunks, id)
			delete(s.byKey, chunkKey{chunk.Collection, chunk.FilePath, chunk.Content})
		}
	}
	return nil
}

// Stats returns one CollectionStats per distinct collection, ordered by
// collection identifier.
func (s *ChunkStore) Stats(_ context.Context) ([]domain.CollectionStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, domain.ErrStoreUnavailable
	}

	byCollection := make(map[string]*domain.CollectionStats)
	for _, chunk := range s.chunks {
		st, ok := byCollection[chunk.Collection]
		if !ok {
			st = &domain.CollectionStats{Collection: chunk.Collection}
			byCollection[chunk.Collection] = st
		}
		st.ChunkCount++
		if chunk.LastUpdated.After(st.LastUpdated) {
			st.LastUpdated = chunk.LastUpdated
		}
	}

	stats := make([]domain.CollectionStats, 0, len(byCollection))
	for _, st := range byCollection {
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Collection < stats[j].Collection
	})

	return stats, nil
}

// SearchSimilar scores all candidate chunks by cosine similarity and
// returns the top-K, descending.
func (s *ChunkStore) SearchSimilar(
	_ context.Context, query []float32, topK int, collections ...string,
) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, domain.ErrStoreUnavailable
	}
	if topK <= 0 {
		return []domain.SearchResult{}, nil
	}
	if s.dimensions != 0 && len(query) != s.dimensions {
		return nil, fmt.Errorf("searching: %w: got %d, store uses %d",
			domain.ErrDimensionMismatch, len(query), s.dimensions)
	}

	filter := make(map[string]bool, len(collections))
	for _, collection := range collections {
		filter[collection] = true
	}

	var candidates []domain.Chunk
	for _, chunk := range s.chunks {
		if len(filter) > 0 && !filter[chunk.Collection] {
			continue
		}
		candidates = append(candidates, chunk)
	}
	// Insertion order as the stable tie-break.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID < candidates[j].ID
	})

	results := make([]domain.SearchResult, 0, len(candidates))
	for i := range candidates {
		results = append(results, domain.SearchResult{
			Chunk:      candidates[i],
			Similarity: domain.CosineSimilarity(query, candidates[i].Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Close marks the store closed; subsequent operations fail.
func (s *ChunkStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
