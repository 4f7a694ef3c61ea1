// Package coastline reads land polygons from ESRI shapefiles.
package coastline

import (
	"fmt"

	"github.com/jonas-p/go-shp"
	"gonum.org/v1/plot/plotter"
)

// Extent is a longitude/latitude window.
type Extent struct {
	LonMin, LonMax float64
	LatMin, LatMax float64
}

// overlaps reports whether the box b intersects e.
func (e Extent) overlaps(b shp.Box) bool {
	return b.MinX <= e.LonMax && b.MaxX >= e.LonMin &&
		b.MinY <= e.LatMax && b.MaxY >= e.LatMin
}

// Ring is one closed part of a polygon in longitude/latitude.
type Ring = plotter.XYs

// Load returns the rings of all polygons in the shapefile at path whose
// bounding box overlaps e. Shapes other than polygons are skipped. Holes
// are returned as ordinary rings.
func Load(path string, e Extent) ([]Ring, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	var rings []Ring
	for r.Next() {
		_, shape := r.Shape()
		var parts []int32
		var points []shp.Point
		switch p := shape.(type) {
		case *shp.Polygon:
			parts, points = p.Parts, p.Points
		case *shp.PolygonZ:
			parts, points = p.Parts, p.Points
		case *shp.PolygonM:
			parts, points = p.Parts, p.Points
		default:
			continue
		}
		if !e.overlaps(shp.BBoxFromPoints(points)) {
			continue
		}
		rings = append(rings, split(parts, points)...)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rings, nil
}

func split(parts []int32, points []shp.Point) []Ring {
	rings := make([]Ring, 0, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || end > int32(len(points)) || start >= end {
			continue
		}
		ring := make(Ring, 0, end-start)
		for _, p := range points[start:end] {
			ring = append(ring, plotter.XY{X: p.X, Y: p.Y})
		}
		rings = append(rings, ring)
	}
	return rings
}
