package driving

import (
	"context"

	"github.com/custodia-labs/docdex/internal/core/domain"
)

// SearchService answers semantic similarity queries over indexed chunks.
type SearchService interface {
	// Search embeds the query text and returns the most similar chunks,
	// descending by cosine similarity. An empty query yields no results.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
