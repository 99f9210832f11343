package utils

import "math"

// CosineSimilarity returns the cosine similarity of two embedding vectors.
//
// Vectors of unequal length are truncated to the shorter length before
// computing. This is a deliberate policy, not an accident: embedding
// dimensions can drift between embedding service versions and the local
// fallback must still produce a usable score for mixed-generation vectors.
// Returns 0 when either vector has zero magnitude.
func CosineSimilarity(a, b []float64) float64 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	if minLen == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := 0; i < minLen; i++ {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// Magnitude returns the Euclidean norm of a vector.
func Magnitude(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// NormalizeVector returns a unit-length copy of v. A zero vector is returned unchanged.
func NormalizeVector(v []float64) []float64 {
	mag := Magnitude(v)
	if mag == 0 {
		return v
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / mag
	}
	return out
}
