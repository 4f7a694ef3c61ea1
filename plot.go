package oxyplot

import (
	"fmt"
	"io"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Plot is a layered plot in the style of the grammar of graphics.
type Plot struct {
	Title string

	// Data is the default data of all layers.
	Data *DataFrame

	// Aes describes how fields in Data are mapped to aesthetics.
	Aes AesMapping

	// Layers contains all the layers displayed in the plot.
	Layers []*Layer

	// Scales holds the position scales "x" and "y". Missing scales
	// are created on demand.
	Scales map[string]*Scale

	Theme Theme
}

// Layer represents one layer of data
type Layer struct {
	Name string

	// A nil Data will use the Data from the plot this Layer belongs to.
	Data        *DataFrame
	DataMapping AesMapping

	// Stat is the statistical transformation used in this layer.
	Stat Stat

	// Geom is the geom to use for this layer
	Geom Geom

	// Legend is the legend entry of this layer, empty for none.
	Legend string

	Fundamentals []Fundamental
	Grobs        []Grob
}

// Panel is the drawing area of a plot together with its scales.
type Panel struct {
	Plot   *Plot
	Scales map[string]*Scale
}

// Add appends layers to p.
func (p *Plot) Add(layers ...*Layer) *Plot {
	p.Layers = append(p.Layers, layers...)
	return p
}

// Scale returns the position scale name ("x" or "y"), creating it if needed.
func (p *Plot) Scale(name string) *Scale {
	if p.Scales == nil {
		p.Scales = make(map[string]*Scale)
	}
	s, ok := p.Scales[name]
	if !ok {
		s = NewScale(name)
		p.Scales[name] = s
	}
	return s
}

func slots(layer *Layer) []string {
	s := append([]string{}, layer.Geom.NeededSlots()...)
	s = append(s, layer.Geom.OptionalSlots()...)
	if layer.Stat != nil {
		info := layer.Stat.Info()
		s = append(s, info.NeededAes...)
		s = append(s, info.OptionalAes...)
	}
	return s
}

// prepareData sets up the data frame of layer: Columns already named like
// a slot are kept, the mapped fields are renamed to their aesthetic and
// discrete position fields are replaced by their position on the scale.
func (p *Plot) prepareData(layer *Layer) (*DataFrame, error) {
	data := layer.Data
	if data == nil {
		data = p.Data
	}
	if data == nil {
		if len(layer.Geom.NeededSlots()) == 0 && layer.Stat == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("layer %q: %w", layer.Name, ErrEmptyFrame)
	}

	name := layer.Name
	if name == "" {
		name = data.Name
	}
	df := NewDataFrame(name, data.Pool)
	df.N = data.N
	for _, slot := range slots(layer) {
		if f, ok := data.Columns[slot]; ok {
			df.Columns[slot] = f.Copy()
		}
	}

	// The plot mapping refers to fields of the plot data only.
	aes := MergeAes(layer.DataMapping)
	if layer.Data == nil {
		aes = MergeAes(layer.DataMapping, p.Aes)
	}
	keys, _ := aes.Used(true)
	for _, a := range keys {
		f, err := data.field(aes[a])
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", layer.Name, err)
		}
		f = f.Copy()
		if (a == "x" || a == "y") && f.Type == String {
			f = p.Scale(a).discretize(f)
		}
		df.Columns[a] = f
	}
	return df, nil
}

func checkSlots(g Geom, df *DataFrame) error {
	for _, slot := range g.NeededSlots() {
		if df == nil || !df.Has(slot) {
			return fmt.Errorf("%s: %q: %w", g.Name(), slot, ErrNoSuchColumn)
		}
	}
	return nil
}

// Build computes the statistics, constructs the geoms, renders them to
// grobs and assembles the gonum plot.
func (p *Plot) Build() (*plot.Plot, error) {
	th := p.Theme.withDefaults()
	panel := &Panel{
		Plot:   p,
		Scales: map[string]*Scale{"x": p.Scale("x"), "y": p.Scale("y")},
	}

	for _, layer := range p.Layers {
		if layer.Geom == nil {
			return nil, fmt.Errorf("layer %q has no geom", layer.Name)
		}
		df, err := p.prepareData(layer)
		if err != nil {
			return nil, err
		}
		if layer.Stat != nil {
			df, err = layer.Stat.Apply(df, panel)
			if err != nil {
				return nil, fmt.Errorf("layer %q: %w", layer.Name, err)
			}
		}
		if err := checkSlots(layer.Geom, df); err != nil {
			return nil, fmt.Errorf("layer %q: %w", layer.Name, err)
		}
		layer.Fundamentals = layer.Geom.Construct(df, panel)
	}

	// Rendering happens after all scales are trained.
	for _, layer := range p.Layers {
		layer.Grobs = layer.Grobs[:0]
		for _, f := range layer.Fundamentals {
			layer.Grobs = append(layer.Grobs, f.Geom.Render(panel, f.Data, f.Geom.Aes(p))...)
		}
	}

	gp := plot.New()
	gp.BackgroundColor = String2Color(th.Background)
	gp.Title.Text = p.Title
	gp.Title.TextStyle.Font = font.From(th.Font, th.TitleSize)
	gp.Title.Padding = vg.Points(6)
	gp.X.Label.TextStyle.Font = font.From(th.Font, th.LabelSize)
	gp.Y.Label.TextStyle.Font = font.From(th.Font, th.LabelSize)
	gp.X.Tick.Label.Font = font.From(th.Font, th.XTickSize)
	gp.Y.Tick.Label.Font = font.From(th.Font, th.YTickSize)
	gp.Legend.TextStyle.Font = font.From(th.Font, vg.Points(12))
	gp.Legend.Top = true

	if !th.NoGrid {
		grid := plotter.NewGrid()
		grid.Vertical.Color = String2Color("gray80")
		grid.Horizontal.Color = String2Color("gray80")
		gp.Add(grid)
	}
	for _, layer := range p.Layers {
		for _, g := range layer.Grobs {
			addGrob(gp, g)
		}
		if layer.Legend == "" {
			continue
		}
		for _, g := range layer.Grobs {
			if thumb, ok := g.(plot.Thumbnailer); ok {
				gp.Legend.Add(layer.Legend, thumb)
				break
			}
		}
	}

	names := make([]string, 0, len(p.Scales))
	for name := range p.Scales {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		switch name {
		case "x":
			p.Scales[name].Apply(&gp.X)
		case "y":
			p.Scales[name].Apply(&gp.Y)
		}
	}
	if gp.X.Min > gp.X.Max || gp.Y.Min > gp.Y.Max {
		return nil, fmt.Errorf("plot %q: %w", p.Title, ErrEmptyFrame)
	}
	return gp, nil
}

type noRange struct {
	plot.Plotter
}

// addGrob adds g to gp. Grobs without a finite data range are drawn but
// do not influence the axes.
func addGrob(gp *plot.Plot, g Grob) {
	if r, ok := g.(plot.DataRanger); ok {
		xmin, xmax, ymin, ymax := r.DataRange()
		for _, v := range []float64{xmin, xmax, ymin, ymax} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				gp.Add(noRange{g})
				return
			}
		}
	}
	gp.Add(g)
}

// WriteSVG renders p as SVG to w.
func (p *Plot) WriteSVG(w io.Writer) error {
	gp, err := p.Build()
	if err != nil {
		return err
	}
	th := p.Theme.withDefaults()
	wt, err := gp.WriterTo(th.Width, th.Height, "svg")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save renders p to file, the format is taken from the file extension.
func (p *Plot) Save(file string) error {
	gp, err := p.Build()
	if err != nil {
		return err
	}
	th := p.Theme.withDefaults()
	if err := gp.Save(th.Width, th.Height, file); err != nil {
		return fmt.Errorf("save %s: %w", file, err)
	}
	return nil
}

// -------------------------------------------------------------------------
// Aesthetic Mappings

// AesMapping controlls the mapping of fields of a data frame to aesthetics.
// The zero value of AesMapping is the identity mapping. As a style it maps
// aesthetics to fixed values.
type AesMapping map[string]string

// Used returns the sorted aesthetics and field names used in m.
func (m AesMapping) Used(includeAll bool) (aes, names []string) {
	for a, n := range m {
		aes = append(aes, a)
		if includeAll || n != "" {
			names = append(names, n)
		}
	}
	sort.Strings(aes)
	sort.Strings(names)
	return aes, names
}

func (m AesMapping) Copy() AesMapping {
	c := make(AesMapping, len(m))
	for a, n := range m {
		c[a] = n
	}
	return c
}

// MergeAes merges set values in all the ams, earlier ones take precedence.
// Empty values are dropped.
func MergeAes(ams ...AesMapping) AesMapping {
	merged := MergeStyles(ams...)
	for k, v := range merged {
		if v == "" {
			delete(merged, k)
		}
	}
	return merged
}
