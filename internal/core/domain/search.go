package domain

// SearchOptions configures a similarity search.
type SearchOptions struct {
	// Limit is the maximum number of results (top-K).
	Limit int

	// Collections restricts candidates to the named collections.
	// Empty means all collections.
	Collections []string
}

// SearchResult represents a single similarity hit.
type SearchResult struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Similarity is the cosine similarity in [-1, 1]. Scores near zero
	// or negative are valid; threshold filtering is a caller concern.
	Similarity float64
}
