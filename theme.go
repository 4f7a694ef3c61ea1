package oxyplot

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// Theme controls the non-data look of a plot.
type Theme struct {
	// Default aesthetics of the geoms.
	PointStyle, LineStyle, RectStyle, TextStyle AesMapping

	Font                                      font.Font
	TitleSize, LabelSize, XTickSize, YTickSize vg.Length

	Width, Height vg.Length

	NoGrid     bool
	Background string

	// Palette colors discrete levels, e.g. the boxes of a boxplot.
	Palette []string
}

var DefaultTheme = Theme{
	PointStyle: AesMapping{
		"size":  "6",
		"shape": "dot",
		"color": "#222222",
		"alpha": "1",
	},
	LineStyle: AesMapping{
		"size":     "1.5",
		"linetype": "solid",
		"color":    "#222222",
		"alpha":    "1",
	},
	RectStyle: AesMapping{
		"size":     "1",
		"linetype": "solid",
		"color":    "#3f3f3f",
		"fill":     "#4C72B0",
		"alpha":    "1",
	},
	TextStyle: AesMapping{
		"size":  "10",
		"color": "black",
		"alpha": "1",
	},
	Font:       plot.DefaultFont,
	TitleSize:  vg.Points(18),
	LabelSize:  vg.Points(16),
	XTickSize:  vg.Points(14),
	YTickSize:  vg.Points(12),
	Width:      8 * vg.Inch,
	Height:     5 * vg.Inch,
	Background: "white",
	Palette:    []string{"#4C72B0", "#DD8452", "#55A868", "#C44E52", "#8172B3", "#937860"},
}

// MergeStyles merges the given styles, earlier ones take precedence.
func MergeStyles(styles ...AesMapping) AesMapping {
	merged := make(AesMapping)
	for i := len(styles) - 1; i >= 0; i-- {
		for k, v := range styles[i] {
			merged[k] = v
		}
	}
	return merged
}

// PaletteColor returns the i'th palette color, cycling.
func (th Theme) PaletteColor(i int) string {
	if len(th.Palette) == 0 {
		return DefaultTheme.Palette[i%len(DefaultTheme.Palette)]
	}
	return th.Palette[i%len(th.Palette)]
}

func (th Theme) textStyle(size vg.Length, c color.Color) text.Style {
	if c == nil {
		c = color.Black
	}
	return text.Style{
		Color:   c,
		Font:    font.From(th.Font, size),
		Handler: plot.DefaultTextHandler,
	}
}

// withDefaults fills the unset fields of th from DefaultTheme.
func (th Theme) withDefaults() Theme {
	d := DefaultTheme
	if th.PointStyle == nil {
		th.PointStyle = d.PointStyle
	}
	if th.LineStyle == nil {
		th.LineStyle = d.LineStyle
	}
	if th.RectStyle == nil {
		th.RectStyle = d.RectStyle
	}
	if th.TextStyle == nil {
		th.TextStyle = d.TextStyle
	}
	if th.Font.Typeface == "" {
		th.Font = d.Font
	}
	if th.TitleSize == 0 {
		th.TitleSize = d.TitleSize
	}
	if th.LabelSize == 0 {
		th.LabelSize = d.LabelSize
	}
	if th.XTickSize == 0 {
		th.XTickSize = d.XTickSize
	}
	if th.YTickSize == 0 {
		th.YTickSize = d.YTickSize
	}
	if th.Width == 0 {
		th.Width = d.Width
	}
	if th.Height == 0 {
		th.Height = d.Height
	}
	if th.Background == "" {
		th.Background = d.Background
	}
	if len(th.Palette) == 0 {
		th.Palette = d.Palette
	}
	return th
}
