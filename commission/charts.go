package commission

import (
	"fmt"

	"github.com/vdobler/oxyplot"
	"github.com/vdobler/oxyplot/oxygen"
	"gonum.org/v1/plot/vg"
)

// Colors of the saturation reference lines.
const (
	CenterColor  = "#32a858"
	PercentColor = "#2c5aa3"
	UMolColor    = "#2c9fa3"
)

const (
	concentrationLabel = "Concentration (uM)"
	pressureLabel      = "Pressure (db)"
)

// Compose lays out chart c of the measurements df. The reference ref is
// drawn if c has an overlay.
func (c Chart) Compose(df *oxyplot.DataFrame, ref oxygen.Reference) (*oxyplot.Plot, error) {
	var (
		p   *oxyplot.Plot
		err error
	)
	switch c.Kind {
	case Boxplot:
		p = boxplot(df)
	case SamplePlot:
		p, err = samplePlot(df)
	case ProfilePlot:
		p, err = profilePlot(df)
	default:
		return nil, fmt.Errorf("chart %s: unknown kind %d", c.File, c.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", c.File, err)
	}
	p.Title = c.Title
	if c.XLabel != "" {
		p.Scale("x").Label = c.XLabel
	}
	if c.Overlay != nil {
		if err := c.Overlay.add(p, ref); err != nil {
			return nil, fmt.Errorf("chart %s: %w", c.File, err)
		}
	}
	if c.XLim != nil {
		p.Scale("x").Limits = c.XLim
	}
	return p, nil
}

func boxplot(df *oxyplot.DataFrame) *oxyplot.Plot {
	p := &oxyplot.Plot{
		Data: df,
		Aes:  oxyplot.AesMapping{"x": InstrumentCol, "y": O2Col},
	}
	p.Add(&oxyplot.Layer{
		Name: "Boxes",
		Stat: oxyplot.StatBoxplot{},
		Geom: oxyplot.GeomBoxplot{},
	})
	p.Scale("x").Label = InstrumentCol
	p.Scale("y").Label = concentrationLabel
	return p
}

// samplePlot shows each measurement against its row number.
func samplePlot(df *oxyplot.DataFrame) (*oxyplot.Plot, error) {
	if !df.Has(O2Col) {
		return nil, fmt.Errorf("%s: %q: %w", df.Name, O2Col, oxyplot.ErrNoSuchColumn)
	}
	data := df.Copy()
	data.AddIndex(SampleCol)
	p := &oxyplot.Plot{
		Data: data,
		Aes:  oxyplot.AesMapping{"x": SampleCol, "y": O2Col},
	}
	p.Add(&oxyplot.Layer{
		Name: "Samples",
		Geom: oxyplot.GeomPoint{Style: oxyplot.AesMapping{
			"shape": "dot",
			"size":  "10",
			"color": oxyplot.DefaultTheme.PaletteColor(0),
		}},
	})
	p.Scale("x").Label = SampleCol
	p.Scale("y").Label = concentrationLabel
	return p, nil
}

// profilePlot draws New A and Old against pressure, pressure increasing
// downwards.
func profilePlot(df *oxyplot.DataFrame) (*oxyplot.Plot, error) {
	p := &oxyplot.Plot{
		Theme: oxyplot.Theme{Width: 5 * vg.Inch, Height: 8 * vg.Inch},
	}
	markers := []struct {
		instrument string
		style      oxyplot.AesMapping
	}{
		{NewA, oxyplot.AesMapping{"shape": "ring", "size": "14", "color": oxyplot.DefaultTheme.PaletteColor(0)}},
		{Old, oxyplot.AesMapping{"shape": "ring", "size": "8", "color": oxyplot.DefaultTheme.PaletteColor(1)}},
	}
	for _, m := range markers {
		sub, err := df.Filter(InstrumentCol, m.instrument)
		if err != nil {
			return nil, err
		}
		p.Add(&oxyplot.Layer{
			Name:        m.instrument,
			Data:        sub,
			DataMapping: oxyplot.AesMapping{"x": O2Col, "y": PressureCol},
			Geom:        oxyplot.GeomPoint{Style: m.style},
			Legend:      m.instrument,
		})
	}
	p.Scale("x").Label = concentrationLabel
	p.Scale("y").Label = pressureLabel
	p.Scale("y").Inverted = true
	return p, nil
}

// frames returns the reference lines and their annotations.
func (o Overlay) frames(ref oxygen.Reference) (*oxyplot.DataFrame, *oxyplot.DataFrame, error) {
	pool := oxyplot.NewStringPool()
	lines := oxyplot.NewDataFrame("saturation reference", pool)
	values := []float64{ref.Center, ref.MinusPct, ref.PlusPct, ref.MinusUM, ref.PlusUM}
	colors := []string{CenterColor, PercentColor, PercentColor, UMolColor, UMolColor}
	n := len(values)
	err := fill(lines,
		column{name: "intercept", floats: values},
		column{name: "slope", floats: make([]float64, n)},
		column{name: "xmin", floats: repeat(o.XMin, n)},
		column{name: "xmax", floats: repeat(o.XMax, n)},
		column{name: "color", strings: colors},
	)
	if err != nil {
		return nil, nil, err
	}

	notes := oxyplot.NewDataFrame("saturation annotations", pool)
	err = fill(notes,
		column{name: "x", floats: o.LabelX[:]},
		column{name: "y", floats: []float64{ref.PlusUM - 0.25, ref.PlusPct - 0.25, ref.Center - o.CenterDrop}},
		column{name: "text", strings: []string{"+1µM", "+1%", "Calc. Sat."}},
	)
	if err != nil {
		return nil, nil, err
	}
	return lines, notes, nil
}

// column is a named Float or, if strings is set, String column.
type column struct {
	name    string
	floats  []float64
	strings []string
}

// fill adds cols to df and stops at the first length mismatch.
func fill(df *oxyplot.DataFrame, cols ...column) error {
	for _, c := range cols {
		var err error
		if c.strings != nil {
			err = df.AddStrings(c.name, c.strings)
		} else {
			err = df.AddFloats(c.name, c.floats)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", df.Name, err)
		}
	}
	return nil
}

func (o Overlay) add(p *oxyplot.Plot, ref oxygen.Reference) error {
	lines, notes, err := o.frames(ref)
	if err != nil {
		return err
	}
	p.Add(
		&oxyplot.Layer{
			Name: "Reference",
			Data: lines,
			Geom: oxyplot.GeomABLine{Style: oxyplot.AesMapping{"size": "1.5"}},
		},
		&oxyplot.Layer{
			Name: "Reference annotations",
			Data: notes,
			Geom: oxyplot.GeomText{Style: oxyplot.AesMapping{"size": "10"}},
		},
	)
	return nil
}

func repeat(x float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = x
	}
	return xs
}
