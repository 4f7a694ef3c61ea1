package nautical

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/vdobler/oxyplot"
	"github.com/vdobler/oxyplot/bathymetry"
	"github.com/vdobler/oxyplot/coastline"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var ErrNoDeployments = errors.New("no deployments")

// Default geometry and look of the deployment chart.
var (
	DefaultExtent = coastline.Extent{LonMin: 146, LonMax: 149, LatMin: -44.5, LatMax: -42}

	// Bathymetry is read for a larger window than shown.
	DefaultGridBounds = bathymetry.Bounds{LatMin: -45, LatMax: -40, LonMin: 146, LonMax: 149}

	DefaultLevels = []float64{-6000, -5000, -4000, -3000, -2000, -1000, -500}
)

const (
	DefaultTitle = "in2020_e02 CTD Deployments"

	OceanColor = "#bde1f1"
	LandColor  = "#c4c8ce"
)

// Place is a named reference point on the chart.
type Place struct {
	Name     string
	Lon, Lat float64

	// Position of the label.
	LabelLon, LabelLat float64
}

var Hobart = Place{
	Name:     "Hobart",
	Lon:      147.3294,
	Lat:      -42.8794,
	LabelLon: 147.02,
	LabelLat: -42.871,
}

// Chart is a map of CTD deployments. Grid and Coast are optional.
type Chart struct {
	Title       string
	Extent      coastline.Extent
	Deployments []Deployment
	Places      []Place
	Grid        *bathymetry.Grid
	Levels      []float64
	Coast       []coastline.Ring

	Width, Height vg.Length
}

// NewChart sets up the default chart of deps.
func NewChart(deps []Deployment, grid *bathymetry.Grid, coast []coastline.Ring) *Chart {
	return &Chart{
		Title:       DefaultTitle,
		Extent:      DefaultExtent,
		Deployments: deps,
		Places:      []Place{Hobart},
		Grid:        grid,
		Levels:      DefaultLevels,
		Coast:       coast,
		Width:       15 * vg.Inch,
		Height:      8 * vg.Inch,
	}
}

// Compose lays out the chart: ocean, isobaths with their labels,
// coastline, deployments and reference places, in this order.
func (c *Chart) Compose() (*oxyplot.Plot, error) {
	if len(c.Deployments) == 0 {
		return nil, ErrNoDeployments
	}
	e := c.Extent

	p := &oxyplot.Plot{
		Title: c.Title,
		Theme: oxyplot.Theme{
			TitleSize: vg.Points(20),
			XTickSize: vg.Points(14),
			YTickSize: vg.Points(14),
			Width:     c.Width,
			Height:    c.Height,
			NoGrid:    true,
		},
	}

	ocean := oxyplot.NewDataFrame("ocean", nil)
	ocean.AddFloats("xmin", []float64{e.LonMin})
	ocean.AddFloats("xmax", []float64{e.LonMax})
	ocean.AddFloats("ymin", []float64{e.LatMin})
	ocean.AddFloats("ymax", []float64{e.LatMax})
	p.Add(&oxyplot.Layer{
		Name: "Ocean",
		Data: ocean,
		Geom: oxyplot.GeomRect{Style: oxyplot.AesMapping{"fill": OceanColor, "color": "none"}},
	})

	if c.Grid != nil {
		layers, err := c.isobaths()
		if err != nil {
			return nil, err
		}
		p.Add(layers...)
	}

	if len(c.Coast) > 0 {
		p.Add(&oxyplot.Layer{
			Name: "Coastline",
			Data: coastFrame(c.Coast),
			Geom: oxyplot.GeomPolygon{Style: oxyplot.AesMapping{
				"fill":  LandColor,
				"color": "black",
				"size":  "0.5",
			}},
		})
	}

	// Graticule above land and sea, below the markers.
	grid := plotter.NewGrid()
	grid.Vertical.Color = oxyplot.SetAlpha(color.Black, 0.3)
	grid.Horizontal.Color = oxyplot.SetAlpha(color.Black, 0.3)
	p.Add(&oxyplot.Layer{Name: "Graticule", Geom: oxyplot.GeomPlotter{Plotter: grid}})

	p.Add(c.deploymentLayers()...)
	p.Add(c.placeLayers()...)

	x, y := p.Scale("x"), p.Scale("y")
	x.Limits = &[2]float64{e.LonMin, e.LonMax}
	y.Limits = &[2]float64{e.LatMin, e.LatMax}
	x.Breaks = oxyplot.Linspace(e.LonMin, e.LonMax, 5)
	y.Breaks = oxyplot.Linspace(e.LatMax, e.LatMin, 5)
	x.Format, y.Format = Longitude, Latitude
	x.Tight, y.Tight = true, true
	return p, nil
}

// WriteSVG renders the chart as SVG to w.
func (c *Chart) WriteSVG(w io.Writer) error {
	p, err := c.Compose()
	if err != nil {
		return err
	}
	return p.WriteSVG(w)
}

// Save renders the chart to file, the format follows the extension.
func (c *Chart) Save(file string) error {
	p, err := c.Compose()
	if err != nil {
		return err
	}
	return p.Save(file)
}

func (c *Chart) isobaths() ([]*oxyplot.Layer, error) {
	e := c.Extent
	grid, err := c.Grid.Crop(bathymetry.Bounds{
		LatMin: e.LatMin, LatMax: e.LatMax,
		LonMin: e.LonMin, LonMax: e.LonMax,
	})
	if err != nil {
		return nil, fmt.Errorf("isobaths: %w", err)
	}
	if cols, rows := grid.Dims(); cols < 2 || rows < 2 {
		return nil, nil
	}

	contour := plotter.NewContour(grid, c.Levels, bone{alpha: 0.4})
	contour.LineStyles = []draw.LineStyle{{Width: vg.Points(0.5)}}
	layers := []*oxyplot.Layer{{
		Name: "Isobaths",
		Geom: oxyplot.GeomPlotter{Plotter: contour},
	}}

	labels := isobathLabels(grid, c.Levels)
	if labels.N > 0 {
		layers = append(layers, &oxyplot.Layer{
			Name: "Isobath labels",
			Data: labels,
			Geom: oxyplot.GeomText{Style: oxyplot.AesMapping{
				"size":  "10",
				"color": "#4d5a66",
				"hjust": "center",
				"vjust": "center",
			}},
		})
	}
	return layers, nil
}

// isobathLabels places one label per level on the middle one of the
// crossings of that level along the grid rows.
func isobathLabels(g *bathymetry.Grid, levels []float64) *oxyplot.DataFrame {
	var xs, ys []float64
	var texts []string
	cols, rows := g.Dims()
	for _, level := range levels {
		var cx, cy []float64
		for r := 0; r < rows; r++ {
			for col := 0; col+1 < cols; col++ {
				z0, z1 := g.Z(col, r)-level, g.Z(col+1, r)-level
				if z0 == z1 || z0*z1 > 0 {
					continue
				}
				t := z0 / (z0 - z1)
				cx = append(cx, g.X(col)+t*(g.X(col+1)-g.X(col)))
				cy = append(cy, g.Y(r))
			}
		}
		if len(cx) == 0 {
			continue
		}
		mid := len(cx) / 2
		xs = append(xs, cx[mid])
		ys = append(ys, cy[mid])
		texts = append(texts, IsobathLabel(level))
	}

	df := oxyplot.NewDataFrame("isobath labels", nil)
	df.AddFloats("x", xs)
	df.AddFloats("y", ys)
	df.AddStrings("text", texts)
	return df
}

func coastFrame(rings []coastline.Ring) *oxyplot.DataFrame {
	var xs, ys, group []float64
	for i, ring := range rings {
		for _, p := range ring {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
			group = append(group, float64(i))
		}
	}
	df := oxyplot.NewDataFrame("coastline", nil)
	df.AddFloats("x", xs)
	df.AddFloats("y", ys)
	df.AddFloats("group", group)
	return df
}

func (c *Chart) deploymentLayers() []*oxyplot.Layer {
	n := len(c.Deployments)
	x, y := make([]float64, n), make([]float64, n)
	lx, ly := make([]float64, n), make([]float64, n)
	text := make([]string, n)
	for i, d := range c.Deployments {
		x[i], y[i] = d.Lon, d.Lat
		lx[i], ly[i] = d.LabelPosition()
		text[i] = d.Label()
	}

	points := oxyplot.NewDataFrame("deployments", nil)
	points.AddFloats("x", x)
	points.AddFloats("y", y)
	labels := oxyplot.NewDataFrame("deployment labels", nil)
	labels.AddFloats("x", lx)
	labels.AddFloats("y", ly)
	labels.AddStrings("text", text)

	return []*oxyplot.Layer{
		{
			Name: "Deployments",
			Data: points,
			Geom: oxyplot.GeomPoint{Style: oxyplot.AesMapping{
				"shape": "circle",
				"size":  "14",
				"fill":  "#f2f542",
				"color": "#dbd814",
			}},
		},
		{
			Name: "Deployment labels",
			Data: labels,
			Geom: oxyplot.GeomText{Style: oxyplot.AesMapping{"size": "14"}},
		},
	}
}

func (c *Chart) placeLayers() []*oxyplot.Layer {
	var layers []*oxyplot.Layer
	for _, pl := range c.Places {
		point := oxyplot.NewDataFrame(pl.Name, nil)
		point.AddFloats("x", []float64{pl.Lon})
		point.AddFloats("y", []float64{pl.Lat})
		label := oxyplot.NewDataFrame(pl.Name+" label", nil)
		label.AddFloats("x", []float64{pl.LabelLon})
		label.AddFloats("y", []float64{pl.LabelLat})
		label.AddStrings("text", []string{pl.Name})

		layers = append(layers,
			&oxyplot.Layer{
				Name: pl.Name,
				Data: point,
				Geom: oxyplot.GeomPoint{Style: oxyplot.AesMapping{
					"shape": "circle",
					"size":  "6",
					"fill":  "#4272f5",
					"color": "#1438db",
				}},
			},
			&oxyplot.Layer{
				Name: pl.Name + " label",
				Data: label,
				Geom: oxyplot.GeomText{Style: oxyplot.AesMapping{"size": "14"}},
			})
	}
	return layers
}

// bone is a black to white palette over blue-grey.
type bone struct {
	alpha float64
}

var _ palette.Palette = bone{}

var boneStops = []colorful.Color{
	{R: 0, G: 0, B: 0},
	{R: 0.319, G: 0.319, B: 0.444},
	{R: 0.652, G: 0.777, B: 0.777},
	{R: 1, G: 1, B: 1},
}

func (b bone) Colors() []color.Color {
	const n = 16
	cs := make([]color.Color, n)
	for i := range cs {
		t := float64(i) / (n - 1) * float64(len(boneStops)-1)
		j := int(t)
		if j >= len(boneStops)-1 {
			j = len(boneStops) - 2
		}
		c := boneStops[j].BlendRgb(boneStops[j+1], t-float64(j))
		cs[i] = oxyplot.SetAlpha(c.Clamped(), b.alpha)
	}
	return cs
}
