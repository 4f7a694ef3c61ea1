package nautical

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdobler/oxyplot"
	"github.com/vdobler/oxyplot/bathymetry"
	"github.com/vdobler/oxyplot/coastline"
	"gonum.org/v1/plot/plotter"
)

const deploymentsCSV = `Deployment,Longitude,Latitude
1,147.85,-43.12
2,147.92,-43.35
3,148.10,-43.60
`

func TestReadDeployments(t *testing.T) {
	deps, err := ReadDeployments(strings.NewReader(deploymentsCSV), "deployments")
	require.NoError(t, err)
	require.Len(t, deps, 3)
	assert.Equal(t, Deployment{ID: 2, Lon: 147.92, Lat: -43.35}, deps[1])

	_, err = ReadDeployments(strings.NewReader("Deployment,Longitude\n1,147\n"), "short")
	assert.ErrorIs(t, err, oxyplot.ErrNoSuchColumn)

	_, err = ReadDeployments(strings.NewReader("Deployment,Longitude,Latitude\n1,147,\n"), "hole")
	assert.Error(t, err)

	_, err = ReadDeployments(strings.NewReader("Deployment,Longitude,Latitude\n1.5,147,-43\n"), "frac")
	assert.Error(t, err)
}

func TestLabelOffset(t *testing.T) {
	assert.Equal(t, 0.02, LabelOffset(1))
	for _, id := range []int{0, 2, 3, 7, 100, -1} {
		assert.Equal(t, -0.04, LabelOffset(id), "id %d", id)
	}

	d := Deployment{ID: 1, Lon: 147, Lat: -43}
	lon, lat := d.LabelPosition()
	assert.InDelta(t, 147.05, lon, 1e-12)
	assert.InDelta(t, -42.98, lat, 1e-12)
	assert.Equal(t, "Dep. 1", d.Label())
}

func TestFormat(t *testing.T) {
	for _, tc := range []struct {
		got, want string
	}{
		{Longitude(146), "146°E"},
		{Longitude(146.75), "146.75°E"},
		{Longitude(-70.5), "70.5°W"},
		{Longitude(180), "180°"},
		{Latitude(-42), "42°S"},
		{Latitude(-44.5), "44.5°S"},
		{Latitude(10), "10°N"},
		{Latitude(0), "0°"},
		{IsobathLabel(-6000), "6000m"},
		{IsobathLabel(-500), "500m"},
	} {
		assert.Equal(t, tc.want, tc.got)
	}
}

// slope is a grid falling 1000 m per degree eastwards from the coast at 146°E.
func slope() *bathymetry.Grid {
	g := &bathymetry.Grid{
		Lat: oxyplot.Linspace(-45, -40, 11),
		Lon: oxyplot.Linspace(146, 149, 13),
	}
	for range g.Lat {
		row := make([]float64, len(g.Lon))
		for c, lon := range g.Lon {
			row[c] = -1000*(lon-146) - 200
		}
		g.Elevation = append(g.Elevation, row)
	}
	return g
}

func testChart(t *testing.T) *Chart {
	t.Helper()
	deps, err := ReadDeployments(strings.NewReader(deploymentsCSV), "deployments")
	require.NoError(t, err)
	coast := []coastline.Ring{{
		{X: 146.2, Y: -43.5}, {X: 147.2, Y: -43.5}, {X: 147.2, Y: -42.2}, {X: 146.2, Y: -42.2},
	}}
	return NewChart(deps, slope(), coast)
}

func TestIsobathLabels(t *testing.T) {
	g := slope()
	df := isobathLabels(g, DefaultLevels)
	// The slope reaches -3200 m at 149°E.
	require.Equal(t, 4, df.N)
	text, err := df.Strings("text")
	require.NoError(t, err)
	assert.Equal(t, []string{"3000m", "2000m", "1000m", "500m"}, text)
	xs, _ := df.Floats("x")
	assert.InDelta(t, 148.8, xs[0], 1e-9)
	assert.InDelta(t, 146.3, xs[3], 1e-9)
}

func TestCompose(t *testing.T) {
	c := testChart(t)
	p, err := c.Compose()
	require.NoError(t, err)

	names := make([]string, len(p.Layers))
	for i, l := range p.Layers {
		names[i] = l.Name
	}
	assert.Equal(t, []string{
		"Ocean", "Isobaths", "Isobath labels", "Coastline", "Graticule",
		"Deployments", "Deployment labels", "Hobart", "Hobart label",
	}, names)

	gp, err := p.Build()
	require.NoError(t, err)
	assert.Equal(t, 146.0, gp.X.Min)
	assert.Equal(t, 149.0, gp.X.Max)
	assert.Equal(t, -44.5, gp.Y.Min)
	assert.Equal(t, -42.0, gp.Y.Max)
	assert.Equal(t, DefaultTitle, gp.Title.Text)

	ticks := gp.Y.Tick.Marker.Ticks(gp.Y.Min, gp.Y.Max)
	require.Len(t, ticks, 5)
	assert.Equal(t, "42°S", ticks[0].Label)
	assert.Equal(t, "44.5°S", ticks[4].Label)

	labels := p.Layers[6].Data
	text, _ := labels.Strings("text")
	assert.Equal(t, []string{"Dep. 1", "Dep. 2", "Dep. 3"}, text)
	ys, _ := labels.Floats("y")
	assert.InDelta(t, -43.10, ys[0], 1e-12)
	assert.InDelta(t, -43.39, ys[1], 1e-12)

	_, ok := p.Layers[1].Geom.(oxyplot.GeomPlotter).Plotter.(*plotter.Contour)
	assert.True(t, ok)
}

func TestComposeWithoutBathymetry(t *testing.T) {
	c := testChart(t)
	c.Grid, c.Coast = nil, nil
	p, err := c.Compose()
	require.NoError(t, err)
	assert.Len(t, p.Layers, 6)

	c.Deployments = nil
	_, err = c.Compose()
	assert.True(t, errors.Is(err, ErrNoDeployments))
}

func TestChartSVGIdempotent(t *testing.T) {
	c := testChart(t)
	var a, b bytes.Buffer
	require.NoError(t, c.WriteSVG(&a))
	require.NoError(t, c.WriteSVG(&b))
	assert.True(t, bytes.Equal(a.Bytes(), b.Bytes()), "svg output differs between runs")
	assert.Contains(t, a.String(), "Hobart")
}
