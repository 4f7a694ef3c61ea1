package oxyplot

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Grob is a graphical object in data coordinates. Grobs are gonum plotters;
// those implementing plot.DataRanger take part in the axis ranges.
type Grob interface {
	plot.Plotter
}

func lineStyle(c color.Color, width vg.Length, lt LineType) draw.LineStyle {
	return draw.LineStyle{
		Color:  c,
		Width:  width,
		Dashes: lt.Dashes(),
	}
}

func project(c *draw.Canvas, plt *plot.Plot, xys plotter.XYs) []vg.Point {
	trX, trY := plt.Transforms(c)
	pts := make([]vg.Point, 0, len(xys))
	for _, p := range xys {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			continue
		}
		pts = append(pts, vg.Point{X: trX(p.X), Y: trY(p.Y)})
	}
	return pts
}

func xysRange(rings ...plotter.XYs) (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(+1), math.Inf(+1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, xys := range rings {
		for _, p := range xys {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) {
				continue
			}
			xmin, xmax = math.Min(xmin, p.X), math.Max(xmax, p.X)
			ymin, ymax = math.Min(ymin, p.Y), math.Max(ymax, p.Y)
		}
	}
	return xmin, xmax, ymin, ymax
}

// -------------------------------------------------------------------------
// Grob Point

type GrobPoint struct {
	x, y  float64
	size  vg.Length
	shape PointShape
	color color.Color // outline, or the whole glyph if fill is nil
	fill  color.Color
}

var (
	_ plot.DataRanger  = GrobPoint{}
	_ plot.Thumbnailer = GrobPoint{}
)

func (point GrobPoint) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	pt := vg.Point{X: trX(point.x), Y: trY(point.y)}
	if !c.Contains(pt) {
		return
	}
	point.draw(&c, pt)
}

func (point GrobPoint) draw(c *draw.Canvas, pt vg.Point) {
	if point.shape == BlankPoint {
		return
	}
	if point.fill != nil {
		c.DrawGlyphNoClip(draw.GlyphStyle{
			Color:  point.fill,
			Radius: point.size,
			Shape:  point.shape.filled(),
		}, pt)
		if point.color != nil {
			c.DrawGlyphNoClip(draw.GlyphStyle{
				Color:  point.color,
				Radius: point.size,
				Shape:  point.shape.hollow(),
			}, pt)
		}
		return
	}
	if point.color != nil {
		c.DrawGlyphNoClip(draw.GlyphStyle{
			Color:  point.color,
			Radius: point.size,
			Shape:  point.shape.Glyph(),
		}, pt)
	}
}

func (point GrobPoint) DataRange() (xmin, xmax, ymin, ymax float64) {
	return point.x, point.x, point.y, point.y
}

func (point GrobPoint) Thumbnail(c *draw.Canvas) {
	point.draw(c, c.Center())
}

func (shape PointShape) filled() draw.GlyphDrawer {
	switch shape {
	case SquarePoint, SolidSquarePoint:
		return draw.BoxGlyph{}
	case DeltaPoint, SolidDeltaPoint:
		return draw.PyramidGlyph{}
	}
	return draw.CircleGlyph{}
}

func (shape PointShape) hollow() draw.GlyphDrawer {
	switch shape {
	case SquarePoint, SolidSquarePoint:
		return draw.SquareGlyph{}
	case DeltaPoint, SolidDeltaPoint:
		return draw.TriangleGlyph{}
	case CrossPoint, PlusPoint, StarPoint:
		return shape.Glyph()
	}
	return draw.RingGlyph{}
}

// -------------------------------------------------------------------------
// Grob Line

type GrobLine struct {
	x0, y0, x1, y1 float64
	size           vg.Length
	linetype       LineType
	color          color.Color
}

func (line GrobLine) Plot(c draw.Canvas, plt *plot.Plot) {
	GrobPath{
		points:   plotter.XYs{{X: line.x0, Y: line.y0}, {X: line.x1, Y: line.y1}},
		size:     line.size,
		linetype: line.linetype,
		color:    line.color,
	}.Plot(c, plt)
}

func (line GrobLine) DataRange() (xmin, xmax, ymin, ymax float64) {
	return math.Min(line.x0, line.x1), math.Max(line.x0, line.x1),
		math.Min(line.y0, line.y1), math.Max(line.y0, line.y1)
}

func (line GrobLine) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(lineStyle(line.color, line.size, line.linetype), c.Min.X, y, c.Max.X, y)
}

// -------------------------------------------------------------------------
// Grob Path

type GrobPath struct {
	points   plotter.XYs
	size     vg.Length
	linetype LineType
	color    color.Color
}

func (path GrobPath) Plot(c draw.Canvas, plt *plot.Plot) {
	if path.color == nil || path.linetype == BlankLine || len(path.points) < 2 {
		return
	}
	pts := project(&c, plt, path.points)
	c.StrokeLines(lineStyle(path.color, path.size, path.linetype), c.ClipLinesXY(pts)...)
}

func (path GrobPath) DataRange() (xmin, xmax, ymin, ymax float64) {
	return xysRange(path.points)
}

func (path GrobPath) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(lineStyle(path.color, path.size, path.linetype), c.Min.X, y, c.Max.X, y)
}

// -------------------------------------------------------------------------
// Grob Polygon

// GrobPolygon is a set of closed rings, each filled and outlined.
type GrobPolygon struct {
	rings    []plotter.XYs
	fill     color.Color
	color    color.Color
	size     vg.Length
	linetype LineType
}

func (poly GrobPolygon) Plot(c draw.Canvas, plt *plot.Plot) {
	for _, ring := range poly.rings {
		pts := project(&c, plt, ring)
		if len(pts) < 3 {
			continue
		}
		if poly.fill != nil {
			c.FillPolygon(poly.fill, c.ClipPolygonXY(pts))
		}
		if poly.color != nil && poly.linetype != BlankLine && poly.size > 0 {
			closed := append(pts, pts[0])
			c.StrokeLines(lineStyle(poly.color, poly.size, poly.linetype), c.ClipLinesXY(closed)...)
		}
	}
}

func (poly GrobPolygon) DataRange() (xmin, xmax, ymin, ymax float64) {
	return xysRange(poly.rings...)
}

func (poly GrobPolygon) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y}, {X: c.Max.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Max.Y}, {X: c.Min.X, Y: c.Max.Y},
	}
	if poly.fill != nil {
		c.FillPolygon(poly.fill, pts)
	}
}

// NewGrobRect returns an axis parallel rectangle.
func NewGrobRect(xmin, ymin, xmax, ymax float64, fill, col color.Color, size vg.Length) GrobPolygon {
	return GrobPolygon{
		rings: []plotter.XYs{{
			{X: xmin, Y: ymin}, {X: xmax, Y: ymin},
			{X: xmax, Y: ymax}, {X: xmin, Y: ymax},
		}},
		fill:     fill,
		color:    col,
		size:     size,
		linetype: SolidLine,
	}
}

// -------------------------------------------------------------------------
// Grob Text

// GrobText is a text label anchored at a data position. It is not clipped
// and does not extend the axis ranges.
type GrobText struct {
	x, y  float64
	text  string
	style text.Style
}

func (t GrobText) Plot(c draw.Canvas, plt *plot.Plot) {
	if t.text == "" {
		return
	}
	trX, trY := plt.Transforms(&c)
	c.FillText(t.style, vg.Point{X: trX(t.x), Y: trY(t.y)}, t.text)
}
