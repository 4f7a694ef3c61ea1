package bathymetry

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCropIndices(t *testing.T) {
	lat := []float64{-45, -44, -43, -42, -41, -40}
	for _, tc := range []struct {
		lo, hi float64
		i0, i1 int
	}{
		{-45, -40, 0, 5},
		{-44.5, -42, 0, 3}, // tie at -44.5 resolves to the lower index
		{-44.4, -41.6, 1, 3},
		{-40, -45, 0, 5},
		{-50, -48, 0, 0},
	} {
		i0, i1, err := CropIndices(lat, tc.lo, tc.hi)
		require.NoError(t, err)
		assert.Equal(t, tc.i0, i0, "lo=%g", tc.lo)
		assert.Equal(t, tc.i1, i1, "hi=%g", tc.hi)
	}

	// Descending coordinates as in some global grids.
	desc := []float64{-40, -41, -42, -43, -44, -45}
	i0, i1, err := CropIndices(desc, -44.5, -42)
	require.NoError(t, err)
	assert.Equal(t, 2, i0)
	assert.Equal(t, 4, i1)

	_, _, err = CropIndices(nil, 0, 1)
	assert.ErrorIs(t, err, ErrEmptyGrid)
}

func testGrid() *Grid {
	g := &Grid{
		Lat: []float64{-45, -44, -43, -42, -41, -40},
		Lon: []float64{145, 146, 147, 148, 149, 150},
	}
	for r := range g.Lat {
		row := make([]float64, len(g.Lon))
		for c := range row {
			row[c] = -1000 * float64(r+c)
		}
		g.Elevation = append(g.Elevation, row)
	}
	return g
}

func TestGridCrop(t *testing.T) {
	g := testGrid()
	crop, err := g.Crop(Bounds{LatMin: -45, LatMax: -40, LonMin: 146, LonMax: 149})
	require.NoError(t, err)

	c, r := crop.Dims()
	assert.Equal(t, 4, c)
	assert.Equal(t, 6, r)
	assert.Equal(t, 146.0, crop.X(0))
	assert.Equal(t, 149.0, crop.X(c-1))
	assert.Equal(t, -45.0, crop.Y(0))
	assert.Equal(t, g.Z(1, 0), crop.Z(0, 0))
	assert.Equal(t, g.Z(4, 5), crop.Z(3, 5))

	// The crop is a copy.
	crop.Elevation[0][0] = 1
	assert.Equal(t, -1000.0, g.Elevation[0][1])

	min, max := crop.MinMax()
	assert.Equal(t, -9000.0, min)
	assert.Equal(t, 1.0, max)
}

type fakeDataset struct {
	vars   map[string][]float64
	grid   [][]float64
	begin  int64
	end    int64
	closed bool
}

func (ds *fakeDataset) coords(name string) ([]float64, error) {
	v, ok := ds.vars[name]
	if !ok {
		return nil, ErrNoVariable
	}
	return v, nil
}

func (ds *fakeDataset) rows(name string, begin, end int64) ([][]float64, error) {
	if name != ElevationVar {
		return nil, ErrNoVariable
	}
	ds.begin, ds.end = begin, end
	return ds.grid[begin:end], nil
}

func (ds *fakeDataset) Close() { ds.closed = true }

func TestLoadReadsOnlyNeededRows(t *testing.T) {
	g := testGrid()
	ds := &fakeDataset{
		vars: map[string][]float64{LatVar: g.Lat, LonVar: g.Lon},
		grid: g.Elevation,
	}
	got, err := load(ds, Bounds{LatMin: -44.2, LatMax: -42.1, LonMin: 146, LonMax: 147})
	require.NoError(t, err)
	assert.Equal(t, int64(1), ds.begin)
	assert.Equal(t, int64(4), ds.end)
	assert.Equal(t, []float64{-44, -43, -42}, got.Lat)
	assert.Equal(t, []float64{146, 147}, got.Lon)
	assert.Equal(t, []float64{-2000, -3000}, got.Elevation[0])
}

func TestLoadDescendingLatitude(t *testing.T) {
	g := testGrid()
	lat := []float64{-40, -41, -42, -43, -44, -45}
	rows := make([][]float64, len(g.Elevation))
	for i := range rows {
		rows[i] = g.Elevation[len(rows)-1-i]
	}
	ds := &fakeDataset{
		vars: map[string][]float64{LatVar: lat, LonVar: g.Lon},
		grid: rows,
	}
	got, err := load(ds, Bounds{LatMin: -45, LatMax: -40, LonMin: 145, LonMax: 150})
	require.NoError(t, err)
	assert.Equal(t, g.Lat, got.Lat)
	assert.Equal(t, g.Elevation, got.Elevation)
}

func TestLoadMissingVariable(t *testing.T) {
	ds := &fakeDataset{vars: map[string][]float64{LatVar: {1, 2}}}
	_, err := load(ds, Bounds{})
	assert.True(t, errors.Is(err, ErrNoVariable))

	_, err = Load(filepath.Join(t.TempDir(), "missing.nc"), Bounds{})
	assert.Error(t, err)
}
