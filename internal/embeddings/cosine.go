package embeddings

import "math"

// maxDistance is the largest cosine distance (opposite vectors). It doubles
// as the defensive result for vectors that cannot be compared, so a stale
// vector from another embedding generation can never match but cannot crash.
const maxDistance = 2.0

// CosineDistance returns 1 minus the cosine similarity of a and b.
// Mismatched dimensions or zero-magnitude vectors yield maxDistance.
func CosineDistance(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return maxDistance
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return maxDistance
	}

	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
