package stats

import (
	"math"
)

// normEpsilon floors vector norms before the cosine division so a
// near-zero column can never produce a divide-by-zero
const normEpsilon = 1e-8

// EuclideanDistance calculates Euclidean (L2) distance between two vectors
func EuclideanDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// CosineSimilarity calculates cosine similarity between two vectors,
// clipped to [-1, 1]
func CosineSimilarity(a, b []float64) float64 {
	dotProduct := 0.0
	normA := 0.0
	normB := 0.0

	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	similarity := dotProduct / ((math.Sqrt(normA) + normEpsilon) * (math.Sqrt(normB) + normEpsilon))

	if similarity > 1.0 {
		return 1.0
	}
	if similarity < -1.0 {
		return -1.0
	}
	return similarity
}

// CosineDistance calculates cosine distance (1 - clipped cosine similarity)
func CosineDistance(a, b []float64) float64 {
	return 1.0 - CosineSimilarity(a, b)
}
