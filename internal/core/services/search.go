package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docdex/internal/core/domain"
	"github.com/custodia-labs/docdex/internal/core/ports/driven"
	"github.com/custodia-labs/docdex/internal/core/ports/driving"
	"github.com/custodia-labs/docdex/internal/logger"
)

// DefaultSearchLimit is used when the caller does not specify a limit.
const DefaultSearchLimit = 10

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService embeds a query and runs similarity search against the store.
type SearchService struct {
	store    driven.ChunkStore
	embedder driven.EmbeddingService
}

// NewSearchService creates a new search service.
func NewSearchService(store driven.ChunkStore, embedder driven.EmbeddingService) *SearchService {
	return &SearchService{store: store, embedder: embedder}
}

// Search embeds the query text and returns the most similar chunks,
// descending by similarity. A blank query returns no results.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := s.store.SearchSimilar(ctx, embedding, limit, opts.Collections...)
	if err != nil {
		return nil, fmt.Errorf("searching store: %w", err)
	}

	logger.Debug("Search for %q returned %d results", query, len(results))
	return results, nil
}
