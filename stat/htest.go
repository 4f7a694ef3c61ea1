package stat

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	gstat "gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Alpha is the significance level of all tests.
const Alpha = 0.05

// ErrZeroVariance is returned by TTest if neither sample varies.
var ErrZeroVariance = stats.ErrZeroVariance

// Significant reports whether p is below Alpha. A NaN p is never
// significant.
func Significant(p float64) bool {
	return p < Alpha
}

// TTestResult is the outcome of a two-sample t-test.
type TTestResult struct {
	N1    int     `yaml:"n1"`
	N2    int     `yaml:"n2"`
	T     float64 `yaml:"t"`
	DoF   float64 `yaml:"dof"`
	P     float64 `yaml:"p"`
	Welch bool    `yaml:"welch"`
}

// Significant reports whether the difference of the means is significant.
func (r TTestResult) Significant() bool {
	return Significant(r.P)
}

// TTest performs a two-sided two-sample t-test of the hypothesis that a and
// b have equal means. The samples are assumed independent and, unless
// welch is set, of equal variance. NaN values are ignored.
//
// If the test cannot be carried out the returned result holds the sample
// sizes and NaN statistics together with the error.
func TTest(a, b []float64, welch bool) (TTestResult, error) {
	a, b = dropNaN(a), dropNaN(b)
	res := TTestResult{
		N1:    len(a),
		N2:    len(b),
		T:     math.NaN(),
		DoF:   math.NaN(),
		P:     math.NaN(),
		Welch: welch,
	}
	if !welch && len(a)+len(b) <= 2 {
		return res, fmt.Errorf("t-test with %d and %d observations: %w", len(a), len(b), ErrSampleSize)
	}

	s1, s2 := stats.Sample{Xs: a}, stats.Sample{Xs: b}
	var (
		r   *stats.TTestResult
		err error
	)
	if welch {
		r, err = stats.TwoSampleWelchTTest(s1, s2, stats.LocationDiffers)
	} else {
		r, err = stats.TwoSampleTTest(s1, s2, stats.LocationDiffers)
	}
	switch {
	case errors.Is(err, stats.ErrSampleSize):
		return res, fmt.Errorf("t-test with %d and %d observations: %w", len(a), len(b), ErrSampleSize)
	case err != nil:
		return res, fmt.Errorf("t-test: %w", err)
	}

	res.T, res.DoF, res.P = r.T, r.DoF, r.P
	return res, nil
}

// FTestResult is the outcome of a one-way analysis of variance.
type FTestResult struct {
	Groups int     `yaml:"groups"`
	N      int     `yaml:"n"`
	F      float64 `yaml:"f"`
	DF1    float64 `yaml:"df_between"`
	DF2    float64 `yaml:"df_within"`
	P      float64 `yaml:"p"`
}

func (r FTestResult) Significant() bool {
	return Significant(r.P)
}

// OneWayANOVA tests the hypothesis that all groups have the same mean.
// NaN values are ignored. At least two non-empty groups and more
// observations than groups are needed.
func OneWayANOVA(groups ...[]float64) (FTestResult, error) {
	clean := make([][]float64, 0, len(groups))
	var all []float64
	for _, g := range groups {
		g = dropNaN(g)
		if len(g) == 0 {
			continue
		}
		clean = append(clean, g)
		all = append(all, g...)
	}
	k, n := len(clean), len(all)
	res := FTestResult{Groups: k, N: n, F: math.NaN(), DF1: float64(k - 1), DF2: float64(n - k), P: math.NaN()}
	if k < 2 || n <= k {
		return res, fmt.Errorf("F-test of %d groups with %d observations: %w", k, n, ErrSampleSize)
	}

	grand := gstat.Mean(all, nil)
	var ssb, ssw float64
	for _, g := range clean {
		m := gstat.Mean(g, nil)
		ssb += float64(len(g)) * (m - grand) * (m - grand)
		for _, x := range g {
			ssw += (x - m) * (x - m)
		}
	}
	msb, msw := ssb/res.DF1, ssw/res.DF2

	switch {
	case msw == 0 && msb == 0:
		// F and P stay NaN.
	case msw == 0:
		res.F, res.P = math.Inf(+1), 0
	default:
		res.F = msb / msw
		res.P = distuv.F{D1: res.DF1, D2: res.DF2}.Survival(res.F)
	}
	return res, nil
}
