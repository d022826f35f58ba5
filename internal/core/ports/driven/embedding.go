package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Note: This is separate from ChunkStore which stores and searches vectors.
// EmbeddingService generates vectors; ChunkStore stores them.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - Local models via inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	// This is determined by the model and must match the dimensionality
	// fixed at the chunk store's first write.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup to verify connectivity before an
	// indexing pass commits to embedding a whole collection.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
