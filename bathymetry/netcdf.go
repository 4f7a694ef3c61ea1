package bathymetry

import (
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// Variable names of a GEBCO style grid.
const (
	LatVar       = "lat"
	LonVar       = "lon"
	ElevationVar = "elevation"
)

// dataset is the part of a NetCDF file Load reads.
type dataset interface {
	// coords returns a one dimensional variable.
	coords(name string) ([]float64, error)
	// rows returns the rows begin to end-1 of a two dimensional variable.
	rows(name string, begin, end int64) ([][]float64, error)
	Close()
}

// Load reads the lat, lon and elevation variables of the NetCDF file at
// path, reading only the rows needed for b, and crops the grid to b.
func Load(path string, b Bounds) (*Grid, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	ds := ncDataset{nc}
	defer ds.Close()

	g, err := load(ds, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func load(ds dataset, b Bounds) (*Grid, error) {
	lat, err := ds.coords(LatVar)
	if err != nil {
		return nil, err
	}
	lon, err := ds.coords(LonVar)
	if err != nil {
		return nil, err
	}
	r0, r1, err := CropIndices(lat, b.LatMin, b.LatMax)
	if err != nil {
		return nil, fmt.Errorf("crop latitude: %w", err)
	}
	c0, c1, err := CropIndices(lon, b.LonMin, b.LonMax)
	if err != nil {
		return nil, fmt.Errorf("crop longitude: %w", err)
	}

	rows, err := ds.rows(ElevationVar, int64(r0), int64(r1+1))
	if err != nil {
		return nil, err
	}
	g := &Grid{
		Lat:       append([]float64(nil), lat[r0:r1+1]...),
		Lon:       append([]float64(nil), lon[c0:c1+1]...),
		Elevation: make([][]float64, len(rows)),
	}
	for i, row := range rows {
		if len(row) <= c1 {
			return nil, fmt.Errorf("%s row %d: %d values, need %d", ElevationVar, r0+i, len(row), c1+1)
		}
		g.Elevation[i] = row[c0 : c1+1]
	}
	if err := g.check(); err != nil {
		return nil, err
	}
	g.normalize()
	return g, nil
}

type ncDataset struct {
	g api.Group
}

func (ds ncDataset) Close() { ds.g.Close() }

func (ds ncDataset) coords(name string) ([]float64, error) {
	v, err := ds.g.GetVariable(name)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", name, ErrNoVariable)
	}
	switch xs := v.Values.(type) {
	case []float64:
		return xs, nil
	case []float32:
		return toFloats(xs), nil
	case []int32:
		return toFloats(xs), nil
	case []int16:
		return toFloats(xs), nil
	}
	return nil, fmt.Errorf("%q: unsupported type %T", name, v.Values)
}

func (ds ncDataset) rows(name string, begin, end int64) ([][]float64, error) {
	vg, err := ds.g.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", name, ErrNoVariable)
	}
	if n := len(vg.Dimensions()); n != 2 {
		return nil, fmt.Errorf("%q has %d dimensions, want 2", name, n)
	}
	slice, err := vg.GetSlice(begin, end)
	if err != nil {
		return nil, fmt.Errorf("read %q[%d:%d]: %w", name, begin, end, err)
	}
	switch v := slice.(type) {
	case [][]float64:
		return v, nil
	case [][]float32:
		return toFloatRows(v), nil
	case [][]int32:
		return toFloatRows(v), nil
	case [][]int16:
		return toFloatRows(v), nil
	case [][]int8:
		return toFloatRows(v), nil
	}
	return nil, fmt.Errorf("%q: unsupported type %T", name, slice)
}

type number interface {
	~int8 | ~int16 | ~int32 | ~float32 | ~float64
}

func toFloats[T number](xs []T) []float64 {
	fs := make([]float64, len(xs))
	for i, x := range xs {
		fs[i] = float64(x)
	}
	return fs
}

func toFloatRows[T number](rows [][]T) [][]float64 {
	fs := make([][]float64, len(rows))
	for i, row := range rows {
		fs[i] = toFloats(row)
	}
	return fs
}
