package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDimensionMismatch indicates an embedding whose length does not
	// match the dimensionality fixed at the store's first write.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Indexing and semantic search are disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrStoreUnavailable indicates the chunk store is not configured or closed.
	ErrStoreUnavailable = errors.New("chunk store unavailable")

	// ErrSourceUnavailable indicates no document source is configured
	// for the requested collection.
	ErrSourceUnavailable = errors.New("document source unavailable")

	// ErrIndexInProgress indicates an indexing pass is already running
	// for the collection.
	ErrIndexInProgress = errors.New("indexing in progress")

	// ErrRateLimited indicates the upstream API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
