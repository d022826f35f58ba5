package domain

import "math"

// CosineSimilarity computes the cosine similarity between two vectors of
// equal length: dot(a, b) / (|a| * |b|). The result is in [-1, 1].
// When either vector has zero magnitude the similarity is defined as 0
// rather than an error.
func CosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
