package domain

import (
	"strings"
	"time"
)

// MaxChunkContent is the soft cap on chunk content length in characters.
// The chunker flushes its accumulator before exceeding it; the degenerate
// single-chunk fallback truncates at exactly this length.
const MaxChunkContent = 1500

// Chunk is the atomic indexed unit: a span of documentation text with its
// embedding vector and provenance metadata.
//
// The uniqueness key is (Collection, FilePath, Content). Re-upserting an
// identical triple replaces the row in place rather than duplicating it.
type Chunk struct {
	// ID is assigned by the store on first persistence and is stable
	// for the lifetime of the row. Zero before persistence.
	ID int64

	// Collection identifies the owning document collection,
	// e.g. "octocat/hello-world".
	Collection string

	// FilePath is the path of the originating document within the collection.
	FilePath string

	// Content is the chunk text. Never empty after trimming.
	Content string

	// Embedding is the vector representation for semantic search.
	// Its length must equal the dimensionality fixed at the store's
	// first write.
	Embedding []float32

	// Title is the human label for the chunk. Defaults to a normalised
	// form of the file name when no top-level heading establishes one.
	Title string

	// Section is the nearest preceding non-top-level heading, cleared
	// whenever a new top-level heading starts. May be empty.
	Section string

	// LastUpdated is the source document's last known modification time.
	LastUpdated time.Time

	// CommitHash is an optional provenance token for the source content.
	CommitHash string
}

// Validate checks the chunk is persistable. Empty post-trim content,
// a missing collection or a missing file path are rejected before any
// write reaches the store.
func (c *Chunk) Validate() error {
	if c.Collection == "" || c.FilePath == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(c.Content) == "" {
		return ErrInvalidInput
	}
	return nil
}

// CollectionStats holds per-collection aggregates derived from chunks.
// It is computed by aggregation, never stored.
type CollectionStats struct {
	// Collection is the collection identifier.
	Collection string

	// ChunkCount is the number of chunks in the collection.
	ChunkCount int

	// LastUpdated is the most recent LastUpdated across the
	// collection's chunks.
	LastUpdated time.Time
}
