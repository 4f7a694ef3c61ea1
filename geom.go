package oxyplot

import (
	"image/color"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// Geom is a geometrical object, a type of visual for the plot.
type Geom interface {
	Name() string            // The name of the geom.
	NeededSlots() []string   // The needed slots to construct this geom.
	OptionalSlots() []string // The optional slots this geom understands.

	// Aes returns the merged default (fixed) aesthetics.
	Aes(plot *Plot) AesMapping

	// Construct breaks the geom down into fundamental geoms and
	// trains the scales of the panel.
	Construct(df *DataFrame, p *Panel) []Fundamental

	// Render interpretes data as the specific geom and produces Grobs.
	Render(p *Panel, data *DataFrame, style AesMapping) []Grob
}

// Fundamental is a geom which can be rendered directly together with
// the data to render.
type Fundamental struct {
	Geom Geom
	Data *DataFrame
}

// trainScales is a helper for geom construction: The some scales of p are
// trained on some fields of data. The spec arguments is of the form
//     "x:xmin,xmax y:ylow,yhigh"
// and determines which scales (here x and y) are trained on which fields.
func trainScales(p *Panel, data *DataFrame, spec string) {
	for _, scaleSpec := range strings.Split(spec, " ") {
		t := strings.Split(scaleSpec, ":")
		scale, ok := p.Scales[t[0]]
		if !ok || len(t) < 2 {
			continue
		}
		for _, field := range strings.Split(t[1], ",") {
			if !data.Has(field) {
				continue
			}
			scale.Train(data.Columns[field])
		}
	}
}

// makeColorFunc returns the color of aes (color or fill) for row i, taken
// from a string column named aes if data has one, else from style.
func makeColorFunc(aes string, data *DataFrame, style AesMapping) func(i int) color.Color {
	alpha := String2Float(style["alpha"], 0, 1, 1)
	if data != nil {
		if f, ok := data.Columns[aes]; ok && f.Type == String {
			return func(i int) color.Color {
				return SetAlpha(String2Color(f.String(f.Data[i])), alpha)
			}
		}
	}
	c := SetAlpha(String2Color(style[aes]), alpha)
	return func(int) color.Color { return c }
}

func lineWidth(style AesMapping) vg.Length {
	return vg.Points(String2Float(style["size"], 0, 20, 1))
}

func single(g Geom, df *DataFrame) []Fundamental {
	return []Fundamental{{Geom: g, Data: df}}
}

// -------------------------------------------------------------------------
// Geom Point

type GeomPoint struct {
	Style AesMapping // The individal fixed, aka non-mapped aesthetics
}

var _ Geom = GeomPoint{}

func (p GeomPoint) Name() string            { return "GeomPoint" }
func (p GeomPoint) NeededSlots() []string   { return []string{"x", "y"} }
func (p GeomPoint) OptionalSlots() []string { return []string{"color", "fill"} }

func (p GeomPoint) Aes(plot *Plot) AesMapping {
	return MergeStyles(p.Style, plot.Theme.PointStyle, DefaultTheme.PointStyle)
}

func (p GeomPoint) Construct(df *DataFrame, panel *Panel) []Fundamental {
	trainScales(panel, df, "x:x y:y")
	return single(p, df)
}

func (p GeomPoint) Render(panel *Panel, data *DataFrame, style AesMapping) []Grob {
	x, y := data.Columns["x"].Data, data.Columns["y"].Data
	colFunc := makeColorFunc("color", data, style)
	fillFunc := makeColorFunc("fill", data, style)
	size := String2PointSize(style["size"])
	shape := String2PointShape(style["shape"])

	grobs := make([]Grob, data.N)
	for i := 0; i < data.N; i++ {
		grobs[i] = GrobPoint{
			x:     x[i],
			y:     y[i],
			size:  size,
			shape: shape,
			color: colFunc(i),
			fill:  fillFunc(i),
		}
	}
	return grobs
}

// -------------------------------------------------------------------------
// Geom Line

// GeomLine connects the observations of each group in data order.
type GeomLine struct {
	Style AesMapping // The individal fixed, aka non-mapped aesthetics
}

var _ Geom = GeomLine{}

func (p GeomLine) Name() string            { return "GeomLine" }
func (p GeomLine) NeededSlots() []string   { return []string{"x", "y"} }
func (p GeomLine) OptionalSlots() []string { return []string{"group", "color"} }

func (p GeomLine) Aes(plot *Plot) AesMapping {
	return MergeStyles(p.Style, plot.Theme.LineStyle, DefaultTheme.LineStyle)
}

func (p GeomLine) Construct(df *DataFrame, panel *Panel) []Fundamental {
	trainScales(panel, df, "x:x y:y")
	return single(p, df)
}

func (p GeomLine) Render(panel *Panel, data *DataFrame, style AesMapping) []Grob {
	x, y := data.Columns["x"].Data, data.Columns["y"].Data
	group := make([]float64, data.N)
	if g, ok := data.Columns["group"]; ok {
		group = g.Data
	}
	colFunc := makeColorFunc("color", data, style)
	width := lineWidth(style)
	lt := String2LineType(style["linetype"])

	var order []float64
	paths := make(map[float64]*GrobPath)
	for i := 0; i < data.N; i++ {
		path, ok := paths[group[i]]
		if !ok {
			path = &GrobPath{size: width, linetype: lt, color: colFunc(i)}
			paths[group[i]] = path
			order = append(order, group[i])
		}
		path.points = append(path.points, plotter.XY{X: x[i], Y: y[i]})
	}

	grobs := make([]Grob, 0, len(order))
	for _, g := range order {
		grobs = append(grobs, *paths[g])
	}
	return grobs
}

// -------------------------------------------------------------------------
// Geom ABLine

// GeomABLine draws the lines y = intercept + slope*x. Lines span the
// optional xmin and xmax columns or else the domain of the x scale.
type GeomABLine struct {
	Style AesMapping // The individal fixed, aka non-mapped aesthetics
}

var _ Geom = GeomABLine{}

func (p GeomABLine) Name() string            { return "GeomABLine" }
func (p GeomABLine) NeededSlots() []string   { return []string{"intercept", "slope"} }
func (p GeomABLine) OptionalSlots() []string { return []string{"xmin", "xmax", "color"} }

func (p GeomABLine) Aes(plot *Plot) AesMapping {
	return MergeStyles(p.Style, plot.Theme.LineStyle, DefaultTheme.LineStyle)
}

func (p GeomABLine) span(df *DataFrame, panel *Panel, i int) (xmin, xmax float64, ok bool) {
	if df.Has("xmin") && df.Has("xmax") {
		return df.Columns["xmin"].Data[i], df.Columns["xmax"].Data[i], true
	}
	scaleX := panel.Scales["x"]
	if !scaleX.Trained() {
		return 0, 0, false
	}
	return scaleX.DomainMin, scaleX.DomainMax, true
}

func (p GeomABLine) Construct(df *DataFrame, panel *Panel) []Fundamental {
	ic, sc := df.Columns["intercept"].Data, df.Columns["slope"].Data
	scaleX, scaleY := panel.Scales["x"], panel.Scales["y"]
	for i := 0; i < df.N; i++ {
		xmin, xmax, ok := p.span(df, panel, i)
		if !ok {
			continue
		}
		intercept, slope := ic[i], sc[i]
		scaleX.TrainByValue(xmin, xmax)
		scaleY.TrainByValue(slope*xmin+intercept, slope*xmax+intercept)
	}
	return single(p, df)
}

func (p GeomABLine) Render(panel *Panel, data *DataFrame, style AesMapping) []Grob {
	ic, sc := data.Columns["intercept"].Data, data.Columns["slope"].Data
	colFunc := makeColorFunc("color", data, style)
	width := lineWidth(style)
	lt := String2LineType(style["linetype"])

	grobs := make([]Grob, 0, data.N)
	for i := 0; i < data.N; i++ {
		xmin, xmax, ok := p.span(data, panel, i)
		if !ok {
			continue
		}
		intercept, slope := ic[i], sc[i]
		grobs = append(grobs, GrobLine{
			x0:       xmin,
			y0:       xmin*slope + intercept,
			x1:       xmax,
			y1:       xmax*slope + intercept,
			color:    colFunc(i),
			size:     width,
			linetype: lt,
		})
	}
	return grobs
}

// -------------------------------------------------------------------------
// Geom Text

// GeomText writes the text column at (x, y). The style keys hjust and
// vjust take left/center/right and bottom/center/top.
type GeomText struct {
	Style AesMapping // The individal fixed, aka non-mapped aesthetics
}

var _ Geom = GeomText{}

func (t GeomText) Name() string            { return "GeomText" }
func (t GeomText) NeededSlots() []string   { return []string{"x", "y", "text"} }
func (t GeomText) OptionalSlots() []string { return []string{"color"} }

func (t GeomText) Aes(plot *Plot) AesMapping {
	return MergeStyles(t.Style, plot.Theme.TextStyle, DefaultTheme.TextStyle)
}

// Text does not train the scales.
func (t GeomText) Construct(df *DataFrame, panel *Panel) []Fundamental {
	return single(t, df)
}

func (t GeomText) Render(panel *Panel, data *DataFrame, style AesMapping) []Grob {
	x, y, s := data.Columns["x"], data.Columns["y"], data.Columns["text"]
	colFunc := makeColorFunc("color", data, style)
	size := vg.Points(String2Float(style["size"], 1, 100, 10))
	theme := panel.Plot.Theme.withDefaults()

	var xalign text.XAlignment
	switch style["hjust"] {
	case "center":
		xalign = text.XCenter
	case "right":
		xalign = text.XRight
	default:
		xalign = text.XLeft
	}
	var yalign text.YAlignment
	switch style["vjust"] {
	case "center":
		yalign = text.YCenter
	case "top":
		yalign = text.YTop
	default:
		yalign = text.YBottom
	}

	grobs := make([]Grob, data.N)
	for i := 0; i < data.N; i++ {
		sty := theme.textStyle(size, colFunc(i))
		sty.XAlign, sty.YAlign = xalign, yalign
		grobs[i] = GrobText{
			x:     x.Data[i],
			y:     y.Data[i],
			text:  s.String(s.Data[i]),
			style: sty,
		}
	}
	return grobs
}

// -------------------------------------------------------------------------
// Geom Rect

type GeomRect struct {
	Style AesMapping // The individal fixed, aka non-mapped aesthetics
}

var _ Geom = GeomRect{}

func (r GeomRect) Name() string          { return "GeomRect" }
func (r GeomRect) NeededSlots() []string { return []string{"xmin", "ymin", "xmax", "ymax"} }
func (r GeomRect) OptionalSlots() []string {
	return []string{"color", "fill"}
}

func (r GeomRect) Aes(plot *Plot) AesMapping {
	return MergeStyles(r.Style, plot.Theme.RectStyle, DefaultTheme.RectStyle)
}

func (r GeomRect) Construct(df *DataFrame, panel *Panel) []Fundamental {
	trainScales(panel, df, "x:xmin,xmax y:ymin,ymax")
	return single(r, df)
}

func (r GeomRect) Render(panel *Panel, data *DataFrame, style AesMapping) []Grob {
	xmin, xmax := data.Columns["xmin"].Data, data.Columns["xmax"].Data
	ymin, ymax := data.Columns["ymin"].Data, data.Columns["ymax"].Data
	colFunc := makeColorFunc("color", data, style)
	fillFunc := makeColorFunc("fill", data, style)
	width := lineWidth(style)

	grobs := make([]Grob, data.N)
	for i := 0; i < data.N; i++ {
		grobs[i] = NewGrobRect(xmin[i], ymin[i], xmax[i], ymax[i], fillFunc(i), colFunc(i), width)
	}
	return grobs
}

// -------------------------------------------------------------------------
// Geom Polygon

// GeomPolygon fills and outlines the closed ring through the points of
// each group.
type GeomPolygon struct {
	Style AesMapping // The individal fixed, aka non-mapped aesthetics
}

var _ Geom = GeomPolygon{}

func (g GeomPolygon) Name() string            { return "GeomPolygon" }
func (g GeomPolygon) NeededSlots() []string   { return []string{"x", "y"} }
func (g GeomPolygon) OptionalSlots() []string { return []string{"group"} }

func (g GeomPolygon) Aes(plot *Plot) AesMapping {
	return MergeStyles(g.Style, plot.Theme.RectStyle, DefaultTheme.RectStyle)
}

func (g GeomPolygon) Construct(df *DataFrame, panel *Panel) []Fundamental {
	trainScales(panel, df, "x:x y:y")
	return single(g, df)
}

func (g GeomPolygon) Render(panel *Panel, data *DataFrame, style AesMapping) []Grob {
	x, y := data.Columns["x"].Data, data.Columns["y"].Data
	group := make([]float64, data.N)
	if gf, ok := data.Columns["group"]; ok {
		group = gf.Data
	}

	poly := GrobPolygon{
		fill:     makeColorFunc("fill", nil, style)(0),
		color:    makeColorFunc("color", nil, style)(0),
		size:     lineWidth(style),
		linetype: String2LineType(style["linetype"]),
	}
	var ring plotter.XYs
	for i := 0; i < data.N; i++ {
		if i > 0 && group[i] != group[i-1] {
			poly.rings = append(poly.rings, ring)
			ring = nil
		}
		ring = append(ring, plotter.XY{X: x[i], Y: y[i]})
	}
	if len(ring) > 0 {
		poly.rings = append(poly.rings, ring)
	}
	return []Grob{poly}
}

// -------------------------------------------------------------------------
// Geom Boxplot

// GeomBoxplot draws the output of StatBoxplot: a box from the first to the
// third quartile filled with the palette color of its position, the
// median, whiskers with caps and the outliers.
type GeomBoxplot struct {
	Style AesMapping // The individal fixed, aka non-mapped aesthetics
	Width float64    // Box width in x units, default 0.8.
}

var _ Geom = GeomBoxplot{}

func (b GeomBoxplot) Name() string { return "GeomBoxplot" }
func (b GeomBoxplot) NeededSlots() []string {
	return []string{"x", "low", "q1", "mid", "q3", "high"}
}
func (b GeomBoxplot) OptionalSlots() []string { return []string{"outliers"} }

func (b GeomBoxplot) Aes(plot *Plot) AesMapping {
	return MergeStyles(b.Style, plot.Theme.RectStyle, DefaultTheme.RectStyle)
}

func (b GeomBoxplot) Construct(data *DataFrame, panel *Panel) []Fundamental {
	low, high := data.Columns["low"].Data, data.Columns["high"].Data
	q1, q3 := data.Columns["q1"].Data, data.Columns["q3"].Data
	x, mid := data.Columns["x"].Data, data.Columns["mid"].Data
	outf := data.Columns["outliers"]
	theme := panel.Plot.Theme.withDefaults()

	width := b.Width
	if width == 0 {
		width = 0.8
	}
	wh := width / 2

	rects := NewDataFrame("Rects of Boxplot of "+data.Name, data.Pool)
	rects.N = data.N
	ymin := NewField(data.N, Float, data.Pool)
	ymax := NewField(data.N, Float, data.Pool)
	xmin := NewField(data.N, Float, data.Pool)
	xmax := NewField(data.N, Float, data.Pool)
	fill := NewField(data.N, String, data.Pool)

	// Per box: lower whisker, upper whisker, median, lower cap, upper cap.
	const segs = 5
	lines := NewDataFrame("Lines of Boxplot of "+data.Name, data.Pool)
	lines.N = 2 * segs * data.N
	xx := NewField(lines.N, Float, data.Pool)
	yy := NewField(lines.N, Float, data.Pool)
	gg := NewField(lines.N, Int, data.Pool)

	outliers := NewDataFrame("Outliers of Boxplot of "+data.Name, data.Pool)
	ox := NewField(0, Float, data.Pool)
	oy := NewField(0, Float, data.Pool)

	for i := 0; i < data.N; i++ {
		xc := x[i]
		xmin.Data[i], xmax.Data[i] = xc-wh, xc+wh
		ymin.Data[i], ymax.Data[i] = q1[i], q3[i]
		fill.Data[i] = float64(data.Pool.Add(theme.PaletteColor(int(xc))))

		capw := wh / 2
		seg := [segs][4]float64{
			{xc, low[i], xc, q1[i]},
			{xc, q3[i], xc, high[i]},
			{xc - wh, mid[i], xc + wh, mid[i]},
			{xc - capw, low[i], xc + capw, low[i]},
			{xc - capw, high[i], xc + capw, high[i]},
		}
		for s, sg := range seg {
			j := 2 * (segs*i + s)
			xx.Data[j], yy.Data[j] = sg[0], sg[1]
			xx.Data[j+1], yy.Data[j+1] = sg[2], sg[3]
			gg.Data[j], gg.Data[j+1] = float64(segs*i+s), float64(segs*i+s)
		}

		for _, q := range outf.GetVec(i) {
			ox.Data = append(ox.Data, xc)
			oy.Data = append(oy.Data, q)
		}
	}

	rects.Columns["xmin"] = xmin
	rects.Columns["xmax"] = xmax
	rects.Columns["ymin"] = ymin
	rects.Columns["ymax"] = ymax
	rects.Columns["fill"] = fill

	lines.Columns["x"] = xx
	lines.Columns["y"] = yy
	lines.Columns["group"] = gg

	outliers.Columns["x"] = ox
	outliers.Columns["y"] = oy
	outliers.N = len(ox.Data)

	trainScales(panel, rects, "x:xmin,xmax")
	trainScales(panel, lines, "y:y")
	trainScales(panel, outliers, "y:y")

	edge := b.Aes(panel.Plot)
	lineStyle := AesMapping{
		"color": edge["color"],
		"size":  edge["size"],
	}
	outlierStyle := AesMapping{
		"color": edge["color"],
		"shape": "solid-square",
		"size":  "4",
	}

	return []Fundamental{
		{
			Geom: GeomRect{Style: b.Style.Copy()},
			Data: rects,
		},
		{
			Geom: GeomLine{Style: lineStyle},
			Data: lines,
		},
		{
			Geom: GeomPoint{Style: outlierStyle},
			Data: outliers,
		},
	}
}

func (b GeomBoxplot) Render(panel *Panel, data *DataFrame, style AesMapping) []Grob {
	panic("GeomBoxplot is not a fundamental geom")
}

// -------------------------------------------------------------------------
// Geom Plotter

// GeomPlotter places an arbitrary gonum plotter, e.g. a contour plot, as a
// layer. It needs no data.
type GeomPlotter struct {
	Plotter plot.Plotter
}

var _ Geom = GeomPlotter{}

func (g GeomPlotter) Name() string              { return "GeomPlotter" }
func (g GeomPlotter) NeededSlots() []string     { return nil }
func (g GeomPlotter) OptionalSlots() []string   { return nil }
func (g GeomPlotter) Aes(plot *Plot) AesMapping { return AesMapping{} }

func (g GeomPlotter) Construct(df *DataFrame, p *Panel) []Fundamental {
	if r, ok := g.Plotter.(plot.DataRanger); ok {
		xmin, xmax, ymin, ymax := r.DataRange()
		p.Scales["x"].TrainByValue(xmin, xmax)
		p.Scales["y"].TrainByValue(ymin, ymax)
	}
	return single(g, df)
}

func (g GeomPlotter) Render(panel *Panel, data *DataFrame, style AesMapping) []Grob {
	return []Grob{g.Plotter}
}
