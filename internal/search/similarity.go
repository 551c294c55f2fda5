// Package search ranks stored chunks against a query by cosine similarity.
package search

import (
	"fmt"
	"math"
)

// CosineSimilarity computes the cosine of the angle between two vectors,
// in [-1, 1]. Vectors must have the same length. If either vector has zero
// magnitude the similarity is defined as 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		ai, bi := float64(a[i]), float64(b[i])
		dot += ai * bi
		normA += ai * ai
		normB += bi * bi
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))

	// Floating-point rounding can push the value a hair outside [-1, 1]
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}
	return sim, nil
}
