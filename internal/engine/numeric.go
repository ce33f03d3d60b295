package engine

import (
	"math"

	"github.com/aretw0/markov/pkg/domain"
	"gonum.org/v1/gonum/floats"
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// divide returns num/den, or a DegeneracyError when den is zero or the result is not finite.
func divide(num, den float64, quantity string, indices ...int) (float64, error) {
	if den == 0 || !finite(den) {
		return 0, &domain.DegeneracyError{Quantity: quantity, Indices: indices, Value: den}
	}
	q := num / den
	if !finite(q) {
		return 0, &domain.DegeneracyError{Quantity: quantity, Indices: indices, Value: den}
	}
	return q, nil
}

// normalize scales x in place so it sums to one and returns the original sum.
func normalize(x []float64, quantity string, indices ...int) (float64, error) {
	sum := floats.Sum(x)
	if sum == 0 || !finite(sum) {
		return sum, &domain.DegeneracyError{Quantity: quantity, Indices: indices, Value: sum}
	}
	floats.Scale(1/sum, x)
	return sum, nil
}

// newMatrix allocates a rows x cols matrix backed by one slice.
func newMatrix(rows, cols int) [][]float64 {
	backing := make([]float64, rows*cols)
	m := make([][]float64, rows)
	for i := range m {
		m[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return m
}

func zero(x []float64) {
	for i := range x {
		x[i] = 0
	}
}
