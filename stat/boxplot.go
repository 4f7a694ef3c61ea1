package stat

// BoxPlotData are the components of a box and whisker plot.
type BoxPlotData struct {
	Min, Max  float64
	Lower     float64 // first quartile
	Middle    float64
	Upper     float64 // third quartile
	Low, High float64 // whisker ends
	Outliers  []float64
}

// BoxPlot calculates the components of a box and whisker plot of xs.
// Whiskers extend to the most extreme observations within coef times the
// interquartile range from the box; observations beyond are outliers.
// NaN values are ignored.
func BoxPlot(xs []float64, coef float64) (BoxPlotData, error) {
	d := dropNaN(xs)
	n := len(d)
	if n == 0 {
		return BoxPlotData{}, ErrSampleSize
	}

	var b BoxPlotData
	b.Min, b.Max = d[0], d[n-1]
	b.Lower, b.Middle, b.Upper = Quantile(0.25, d), Quantile(0.5, d), Quantile(0.75, d)

	iqr := b.Upper - b.Lower
	lo, hi := b.Lower-coef*iqr, b.Upper+coef*iqr
	b.Low, b.High = b.Max, b.Min
	for _, y := range d {
		if y >= lo && y < b.Low {
			b.Low = y
		}
		if y <= hi && y > b.High {
			b.High = y
		}
		if y < lo || y > hi {
			b.Outliers = append(b.Outliers, y)
		}
	}
	return b, nil
}
