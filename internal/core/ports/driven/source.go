package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/docdex/internal/core/domain"
)

// DocumentSource yields the raw documents of a named collection.
// Each source type (github, filesystem) implements this interface.
type DocumentSource interface {
	// Type returns the source type identifier.
	Type() string

	// Validate checks the source is properly configured and reachable.
	// For API sources this makes a lightweight test call; for filesystem
	// sources it checks the root path. A missing documents directory is
	// not a validation failure: Fetch reports it as zero documents.
	Validate(ctx context.Context) error

	// Fetch returns the documents of the given collection. A collection
	// with no documents yields an empty slice, not an error.
	Fetch(ctx context.Context, collection string) ([]domain.SourceDocument, error)

	// LastModified returns the collection's last-known modification time
	// at the source, used by the freshness gate without fetching content.
	LastModified(ctx context.Context, collection string) (time.Time, error)

	// Close releases resources.
	Close() error
}
