package nautical

import (
	"math"
	"strconv"
)

// Longitude formats x as degrees east or west, e.g. 146.75°E.
func Longitude(x float64) string {
	return degrees(x, "E", "W")
}

// Latitude formats y as degrees north or south, e.g. 42°S.
func Latitude(y float64) string {
	return degrees(y, "N", "S")
}

func degrees(v float64, pos, neg string) string {
	// Values on the equator, the prime or the antimeridian carry no
	// hemisphere.
	if v == 0 || math.Abs(v) == 180 {
		return strconv.FormatFloat(math.Abs(v), 'f', -1, 64) + "°"
	}
	hemi := pos
	if v < 0 {
		hemi = neg
	}
	return strconv.FormatFloat(math.Abs(v), 'f', -1, 64) + "°" + hemi
}

// IsobathLabel labels the contour at elevation level, e.g. -500 as 500m.
func IsobathLabel(level float64) string {
	return strconv.FormatFloat(math.Abs(level), 'f', -1, 64) + "m"
}
