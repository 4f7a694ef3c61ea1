// Package stat provides the numerical summaries and significance tests used
// to compare instrument readings.
package stat

import (
	"errors"
	"math"
	"sort"

	gstat "gonum.org/v1/gonum/stat"
)

// ErrSampleSize is returned when a sample is too small for a computation.
var ErrSampleSize = errors.New("stat: sample too small")

// Quantile returns the p-quantile of the ascending sorted x. It interpolates
// linearly between the closest ranks, h = (n-1)p, like R's type 7.
func Quantile(p float64, x []float64) float64 {
	n := len(x)
	switch {
	case n == 0 || math.IsNaN(p):
		return math.NaN()
	case n == 1 || p <= 0:
		return x[0]
	case p >= 1:
		return x[n-1]
	}
	h := float64(n-1) * p
	i := int(math.Floor(h))
	if i+1 >= n {
		return x[n-1]
	}
	return x[i] + (h-float64(i))*(x[i+1]-x[i])
}

// Summary is the count, mean, standard deviation, extrema and quartiles of
// a sample. Std is the sample (n-1) standard deviation and NaN for a single
// observation.
type Summary struct {
	Count  int     `yaml:"count"`
	Mean   float64 `yaml:"mean"`
	Std    float64 `yaml:"std"`
	Min    float64 `yaml:"min"`
	Q1     float64 `yaml:"q25"`
	Median float64 `yaml:"q50"`
	Q3     float64 `yaml:"q75"`
	Max    float64 `yaml:"max"`
}

// dropNaN returns the non-NaN values of xs in ascending order.
func dropNaN(xs []float64) []float64 {
	s := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			s = append(s, x)
		}
	}
	sort.Float64s(s)
	return s
}

// Describe summarizes xs, ignoring NaN values.
func Describe(xs []float64) (Summary, error) {
	s := dropNaN(xs)
	n := len(s)
	if n == 0 {
		return Summary{}, ErrSampleSize
	}
	sum := Summary{
		Count:  n,
		Mean:   gstat.Mean(s, nil),
		Std:    math.NaN(),
		Min:    s[0],
		Q1:     Quantile(0.25, s),
		Median: Quantile(0.5, s),
		Q3:     Quantile(0.75, s),
		Max:    s[n-1],
	}
	if n > 1 {
		sum.Std = gstat.StdDev(s, nil)
	}
	return sum, nil
}

// Median returns the median of xs ignoring NaN values.
func Median(xs []float64) float64 {
	return Quantile(0.5, dropNaN(xs))
}
