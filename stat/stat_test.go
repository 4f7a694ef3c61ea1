package stat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantile(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	for _, tc := range []struct {
		p, want float64
	}{
		{0, 1}, {0.25, 1.75}, {0.5, 2.5}, {0.75, 3.25}, {1, 4},
	} {
		if got := Quantile(tc.p, x); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("Quantile(%g) = %g, want %g", tc.p, got, tc.want)
		}
	}
	assert.True(t, math.IsNaN(Quantile(0.5, nil)))
	assert.Equal(t, 7.0, Quantile(0.3, []float64{7}))
}

func TestDescribe(t *testing.T) {
	s, err := Describe([]float64{4, 2, math.NaN(), 1, 3})
	require.NoError(t, err)
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), s.Std, 1e-12)
	assert.Equal(t, 1.0, s.Min)
	assert.InDelta(t, 1.75, s.Q1, 1e-12)
	assert.InDelta(t, 2.5, s.Median, 1e-12)
	assert.InDelta(t, 3.25, s.Q3, 1e-12)
	assert.Equal(t, 4.0, s.Max)

	one, err := Describe([]float64{5})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(one.Std), "std of a single value")

	_, err = Describe(nil)
	assert.ErrorIs(t, err, ErrSampleSize)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 3.0, Median([]float64{5, 1, 3}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 3, 2}))
}

func TestBoxPlot(t *testing.T) {
	b, err := BoxPlot([]float64{100, 1, 2, 3, 4}, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 2.0, b.Lower)
	assert.Equal(t, 3.0, b.Middle)
	assert.Equal(t, 4.0, b.Upper)
	assert.Equal(t, 1.0, b.Low)
	assert.Equal(t, 4.0, b.High)
	assert.Equal(t, []float64{100}, b.Outliers)
	assert.Equal(t, 1.0, b.Min)
	assert.Equal(t, 100.0, b.Max)

	_, err = BoxPlot([]float64{math.NaN()}, 1.5)
	assert.ErrorIs(t, err, ErrSampleSize)
}

func TestTTest(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 3, 4, 5, 6}

	r, err := TTest(a, b, false)
	require.NoError(t, err)
	assert.InDelta(t, -1, r.T, 1e-12)
	assert.InDelta(t, 8, r.DoF, 1e-12)
	assert.InDelta(t, 0.3466, r.P, 1e-3)
	assert.False(t, r.Significant())

	w, err := TTest(a, b, true)
	require.NoError(t, err)
	assert.True(t, w.Welch)
	assert.InDelta(t, -1, w.T, 1e-12)
	assert.InDelta(t, 8, w.DoF, 1e-9)

	far := []float64{20, 21, 22, 23, 24}
	r, err = TTest(a, far, false)
	require.NoError(t, err)
	assert.True(t, r.Significant())
}

func TestTTestDegenerate(t *testing.T) {
	r, err := TTest([]float64{1, 1, 1}, []float64{1, 1, 1}, false)
	assert.ErrorIs(t, err, ErrZeroVariance)
	assert.True(t, math.IsNaN(r.P))
	assert.False(t, r.Significant())
	assert.Equal(t, 3, r.N1)

	_, err = TTest([]float64{1}, []float64{2}, false)
	assert.ErrorIs(t, err, ErrSampleSize)
	_, err = TTest([]float64{1}, []float64{2, 3}, true)
	assert.ErrorIs(t, err, ErrSampleSize)
}

func TestSignificantIffBelowAlpha(t *testing.T) {
	for _, p := range []float64{0, 0.01, 0.0499999, 0.05, 0.051, 0.5, 1, math.NaN()} {
		want := p < 0.05
		if got := Significant(p); got != want {
			t.Errorf("Significant(%g) = %t, want %t", p, got, want)
		}
	}

	samples := [][2][]float64{
		{{1, 2, 3}, {1.1, 2.1, 3.1}},
		{{1, 2, 3}, {10, 11, 12}},
		{{278.1, 278.4, 278.2, 278.0}, {276.9, 277.3, 277.0, 277.1}},
		{{5, 6, 5, 6}, {5.5, 5.6, 5.4, 5.5}},
	}
	for i, s := range samples {
		for _, welch := range []bool{false, true} {
			r, err := TTest(s[0], s[1], welch)
			require.NoError(t, err)
			if r.Significant() != (r.P < 0.05) {
				t.Errorf("%d (welch=%t): p=%g significant=%t", i, welch, r.P, r.Significant())
			}
		}
	}
}

func TestOneWayANOVA(t *testing.T) {
	r, err := OneWayANOVA([]float64{1, 2, 3}, []float64{4, 5, 6}, []float64{7, 8, 9})
	require.NoError(t, err)
	assert.Equal(t, 3, r.Groups)
	assert.Equal(t, 9, r.N)
	assert.InDelta(t, 27, r.F, 1e-12)
	assert.Equal(t, 2.0, r.DF1)
	assert.Equal(t, 6.0, r.DF2)
	// For two numerator degrees of freedom the survival function is
	// (1 + 2F/d2)^(-d2/2).
	assert.InDelta(t, 0.001, r.P, 1e-9)
	assert.True(t, r.Significant())

	same, err := OneWayANOVA([]float64{1, 1}, []float64{1, 1})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(same.P))
	assert.False(t, same.Significant())

	_, err = OneWayANOVA([]float64{1, 2})
	assert.ErrorIs(t, err, ErrSampleSize)
}
