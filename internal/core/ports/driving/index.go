package driving

import (
	"context"

	"github.com/custodia-labs/docdex/internal/core/domain"
)

// IndexService coordinates indexing passes over document collections.
type IndexService interface {
	// Index runs an indexing pass for the collection: the freshness gate
	// decides skip vs. re-index, then documents are fetched, chunked,
	// embedded and upserted. When force is true the gate is bypassed.
	// Returns the pass report, or a nil report when the gate skipped.
	Index(ctx context.Context, collection string, force bool) (*IndexReport, error)

	// Clear removes all chunks for the collection.
	Clear(ctx context.Context, collection string) error

	// Stats returns per-collection aggregates for all indexed collections.
	Stats(ctx context.Context) ([]domain.CollectionStats, error)

	// Status returns the status of a running pass, or an idle status.
	Status(ctx context.Context, collection string) (*IndexStatus, error)
}

// IndexReport summarises a completed indexing pass.
type IndexReport struct {
	// Collection is the indexed collection.
	Collection string

	// Documents is the number of source documents processed.
	Documents int

	// Chunks is the number of chunks upserted.
	Chunks int

	// Errors is the number of documents that failed and were skipped.
	Errors int
}

// IndexStatus describes an in-flight or idle indexing pass.
type IndexStatus struct {
	// Collection is the collection being indexed.
	Collection string

	// RunID identifies the pass for log correlation.
	RunID string

	// Running reports whether a pass is currently active.
	Running bool

	// DocumentsProcessed is the running document count.
	DocumentsProcessed int
}
