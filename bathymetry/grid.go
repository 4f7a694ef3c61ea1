// Package bathymetry holds gridded sea floor elevation and crops it to a
// geographic window.
package bathymetry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vdobler/oxyplot"
	"gonum.org/v1/plot/plotter"
)

var (
	ErrNoVariable = errors.New("no such variable")
	ErrEmptyGrid  = errors.New("empty grid")
)

// Bounds is a latitude/longitude window in decimal degrees.
type Bounds struct {
	LatMin, LatMax float64
	LonMin, LonMax float64
}

// Grid is an elevation grid with one row per latitude and one column per
// longitude, both ascending. Elevation is in metres, negative below sea
// level.
type Grid struct {
	Lat       []float64
	Lon       []float64
	Elevation [][]float64 // [lat][lon]
}

var _ plotter.GridXYZ = (*Grid)(nil)

func (g *Grid) Dims() (c, r int)   { return len(g.Lon), len(g.Lat) }
func (g *Grid) Z(c, r int) float64 { return g.Elevation[r][c] }
func (g *Grid) X(c int) float64    { return g.Lon[c] }
func (g *Grid) Y(r int) float64    { return g.Lat[r] }

// CropIndices returns the indices of the coordinates nearest to lo and hi,
// lower index first. Both are part of the crop, so the cropped grid may
// reach up to half a cell beyond or fall half a cell short of [lo, hi].
func CropIndices(coords []float64, lo, hi float64) (i0, i1 int, err error) {
	i0 = oxyplot.NearestIndex(coords, lo)
	i1 = oxyplot.NearestIndex(coords, hi)
	if i0 == -1 || i1 == -1 {
		return 0, 0, ErrEmptyGrid
	}
	if i0 > i1 {
		i0, i1 = i1, i0
	}
	return i0, i1, nil
}

// Crop returns the part of g within b as a new grid.
func (g *Grid) Crop(b Bounds) (*Grid, error) {
	r0, r1, err := CropIndices(g.Lat, b.LatMin, b.LatMax)
	if err != nil {
		return nil, fmt.Errorf("crop latitude: %w", err)
	}
	c0, c1, err := CropIndices(g.Lon, b.LonMin, b.LonMax)
	if err != nil {
		return nil, fmt.Errorf("crop longitude: %w", err)
	}

	crop := &Grid{
		Lat:       append([]float64(nil), g.Lat[r0:r1+1]...),
		Lon:       append([]float64(nil), g.Lon[c0:c1+1]...),
		Elevation: make([][]float64, 0, r1-r0+1),
	}
	for _, row := range g.Elevation[r0 : r1+1] {
		crop.Elevation = append(crop.Elevation, append([]float64(nil), row[c0:c1+1]...))
	}
	return crop, nil
}

// MinMax returns the lowest and highest elevation in g.
func (g *Grid) MinMax() (min, max float64) {
	f := oxyplot.Field{Type: oxyplot.Float}
	for _, row := range g.Elevation {
		f.Data = append(f.Data, row...)
	}
	min, max, _, _ = f.MinMax()
	return min, max
}

// normalize flips descending axes so that both Lat and Lon ascend.
func (g *Grid) normalize() {
	if !sort.Float64sAreSorted(g.Lat) {
		reverse(g.Lat)
		for i, j := 0, len(g.Elevation)-1; i < j; i, j = i+1, j-1 {
			g.Elevation[i], g.Elevation[j] = g.Elevation[j], g.Elevation[i]
		}
	}
	if !sort.Float64sAreSorted(g.Lon) {
		reverse(g.Lon)
		for _, row := range g.Elevation {
			reverse(row)
		}
	}
}

func reverse(xs []float64) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}

func (g *Grid) check() error {
	if len(g.Lat) == 0 || len(g.Lon) == 0 {
		return ErrEmptyGrid
	}
	if len(g.Elevation) != len(g.Lat) {
		return fmt.Errorf("%d elevation rows for %d latitudes", len(g.Elevation), len(g.Lat))
	}
	for i, row := range g.Elevation {
		if len(row) != len(g.Lon) {
			return fmt.Errorf("elevation row %d has %d values for %d longitudes", i, len(row), len(g.Lon))
		}
	}
	return nil
}
