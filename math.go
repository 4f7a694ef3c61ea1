package oxyplot

import (
	"math"
)

// NearestIndex returns the index of the element of xs closest to v.
// On a tie the lower index wins. NaN elements are never selected; -1 is
// returned for an empty or all-NaN xs.
func NearestIndex(xs []float64, v float64) int {
	best, bestDist := -1, math.Inf(+1)
	for i, x := range xs {
		d := math.Abs(x - v)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Linspace returns n evenly spaced values from a to b, both included.
func Linspace(a, b float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{a}
	}
	xs := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range xs {
		xs[i] = a + float64(i)*step
	}
	xs[n-1] = b
	return xs
}
