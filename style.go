package oxyplot

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// String2Float parses a style value like "0.4" or "40%" and clamps it to
// [low,high]. Unparsable values yield def.
func String2Float(s string, low, high, def float64) float64 {
	factor := 1.0
	if strings.HasSuffix(s, "%") {
		s = s[:len(s)-1]
		factor = 100
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	value /= factor

	if value < low {
		return low
	} else if value > high {
		return high
	}
	return value
}

// SetAlpha returns c with its opacity scaled by a.
func SetAlpha(c color.Color, a float64) color.Color {
	if c == nil {
		return nil
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A)*a + 0.5)
	return n
}

// -------------------------------------------------------------------------
// Points

type PointShape int

const (
	BlankPoint PointShape = iota
	CirclePoint
	SquarePoint
	DeltaPoint
	SolidCirclePoint
	SolidSquarePoint
	SolidDeltaPoint
	CrossPoint
	PlusPoint
	StarPoint
)

func String2PointShape(s string) PointShape {
	n, err := strconv.Atoi(s)
	if err == nil {
		return PointShape(n % (int(StarPoint) + 1))
	}
	switch s {
	case "circle", "ring":
		return CirclePoint
	case "square":
		return SquarePoint
	case "delta":
		return DeltaPoint
	case "solid-circle", "dot":
		return SolidCirclePoint
	case "solid-square":
		return SolidSquarePoint
	case "solid-delta":
		return SolidDeltaPoint
	case "cross":
		return CrossPoint
	case "plus":
		return PlusPoint
	case "star":
		return StarPoint
	}
	return BlankPoint
}

// Glyph returns the glyph drawer for shape. BlankPoint has none.
func (shape PointShape) Glyph() draw.GlyphDrawer {
	switch shape {
	case CirclePoint:
		return draw.RingGlyph{}
	case SquarePoint:
		return draw.SquareGlyph{}
	case DeltaPoint:
		return draw.TriangleGlyph{}
	case SolidCirclePoint:
		return draw.CircleGlyph{}
	case SolidSquarePoint:
		return draw.BoxGlyph{}
	case SolidDeltaPoint:
		return draw.PyramidGlyph{}
	case CrossPoint:
		return draw.CrossGlyph{}
	case PlusPoint, StarPoint:
		return draw.PlusGlyph{}
	}
	return nil
}

// Solid reports whether shape is drawn filled.
func (shape PointShape) Solid() bool {
	return shape == SolidCirclePoint || shape == SolidSquarePoint || shape == SolidDeltaPoint
}

// String2PointSize parses a marker size given in points, the way a
// markersize is given to other plotting packages. It returns the glyph
// radius.
func String2PointSize(s string) vg.Length {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n <= 0 {
		n = 6
	}
	return vg.Points(n / 2)
}

// -------------------------------------------------------------------------
// Lines

type LineType int

const (
	BlankLine LineType = iota
	SolidLine
	DashedLine
	DottedLine
	DotDashLine
)

func String2LineType(s string) LineType {
	n, err := strconv.Atoi(s)
	if err == nil {
		return LineType(n % (int(DotDashLine) + 1))
	}
	switch s {
	case "solid", "-":
		return SolidLine
	case "dashed", "--":
		return DashedLine
	case "dotted", ":":
		return DottedLine
	case "dotdash", "-.":
		return DotDashLine
	default:
		return BlankLine
	}
}

// Dashes returns the dash pattern of lt.
func (lt LineType) Dashes() []vg.Length {
	switch lt {
	case DashedLine:
		return []vg.Length{vg.Points(6), vg.Points(3)}
	case DottedLine:
		return []vg.Length{vg.Points(1), vg.Points(2)}
	case DotDashLine:
		return []vg.Length{vg.Points(6), vg.Points(2), vg.Points(1), vg.Points(2)}
	}
	return nil
}

// -------------------------------------------------------------------------
// Colors

var BuiltinColors = map[string]color.RGBA{
	"red":    {0xff, 0x00, 0x00, 0xff},
	"green":  {0x00, 0x80, 0x00, 0xff},
	"blue":   {0x00, 0x00, 0xff, 0xff},
	"white":  {0xff, 0xff, 0xff, 0xff},
	"gray20": {0x33, 0x33, 0x33, 0xff},
	"gray40": {0x66, 0x66, 0x66, 0xff},
	"gray":   {0x7f, 0x7f, 0x7f, 0xff},
	"gray80": {0xcc, 0xcc, 0xcc, 0xff},
	"black":  {0x00, 0x00, 0x00, 0xff},
}

// String2Color parses "#rrggbb", "#rrggbbaa" or one of the BuiltinColors.
// "none" and the empty string yield nil, i.e. nothing is drawn.
func String2Color(s string) color.Color {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return nil
	}
	if strings.HasPrefix(s, "#") && len(s) >= 7 {
		var r, g, b, a uint8
		fmt.Sscanf(s[1:3], "%2x", &r)
		fmt.Sscanf(s[3:5], "%2x", &g)
		fmt.Sscanf(s[5:7], "%2x", &b)
		a = 0xff
		if len(s) >= 9 {
			fmt.Sscanf(s[7:9], "%2x", &a)
		}
		return color.NRGBA{r, g, b, a}
	}
	if col, ok := BuiltinColors[s]; ok {
		return col
	}

	return color.NRGBA{0xaa, 0x66, 0x77, 0x7f}
}
