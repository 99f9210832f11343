package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float64
		b        []float64
		expected float64
	}{
		{
			name:     "identical vectors",
			a:        []float64{0.5, 0.5, 0.5},
			b:        []float64{0.5, 0.5, 0.5},
			expected: 1,
		},
		{
			name:     "orthogonal vectors",
			a:        []float64{1, 0},
			b:        []float64{0, 1},
			expected: 0,
		},
		{
			name:     "opposite vectors",
			a:        []float64{1, 2, 3},
			b:        []float64{-1, -2, -3},
			expected: -1,
		},
		{
			name:     "scaled vectors keep similarity 1",
			a:        []float64{1, 2, 3},
			b:        []float64{2, 4, 6},
			expected: 1,
		},
		{
			name:     "zero vector",
			a:        []float64{0, 0, 0},
			b:        []float64{1, 2, 3},
			expected: 0,
		},
		{
			name:     "both empty",
			a:        []float64{},
			b:        []float64{},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosineSimilarity_UnequalLengths(t *testing.T) {
	// Unequal lengths are compared over the shorter prefix.
	a := []float64{1, 0}
	b := []float64{1, 0, 0.7, 0.3}

	got := CosineSimilarity(a, b)
	want := CosineSimilarity(a, b[:2])
	assert.InDelta(t, want, got, 1e-9)
}

func TestCosineSimilarity_Bounds(t *testing.T) {
	a := []float64{0.3, -0.8, 0.1, 0.5}
	b := []float64{-0.2, 0.9, 0.4, -0.1}

	got := CosineSimilarity(a, b)
	assert.GreaterOrEqual(t, got, -1.0)
	assert.LessOrEqual(t, got, 1.0)
}

func TestMagnitude(t *testing.T) {
	assert.InDelta(t, 5, Magnitude([]float64{3, 4}), 1e-9)
	assert.InDelta(t, 0, Magnitude([]float64{}), 1e-9)
	assert.InDelta(t, 0, Magnitude([]float64{0, 0}), 1e-9)
}

func TestNormalizeVector(t *testing.T) {
	got := NormalizeVector([]float64{3, 4})
	assert.InDelta(t, 1, Magnitude(got), 1e-9)
	assert.InDelta(t, 0.6, got[0], 1e-9)
	assert.InDelta(t, 0.8, got[1], 1e-9)

	zero := []float64{0, 0, 0}
	assert.Equal(t, zero, NormalizeVector(zero))
}
