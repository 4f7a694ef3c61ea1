package oxyplot

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Scale is a position scale (the x or y axis) of a plot.
type Scale struct {
	Name  string // "x" or "y"
	Label string

	// Discrete scales place their Levels at 0, 1, 2...
	Discrete bool
	Levels   []string

	// Domain as trained on the data.
	DomainMin float64
	DomainMax float64

	// Limits fixes the visible range if set.
	Limits *[2]float64

	Inverted bool

	// Tight removes the padding between axis and data.
	Tight bool

	// Breaks are the tick positions, empty means automatic. Format
	// labels them and defaults to %g.
	Breaks []float64
	Format func(x float64) string
}

// NewScale sets up an untrained scale.
func NewScale(name string) *Scale {
	return &Scale{
		Name:      name,
		DomainMin: math.Inf(+1),
		DomainMax: math.Inf(-1),
	}
}

// Train updates the domain of s with the data in f.
func (s *Scale) Train(f Field) {
	min, max, mini, maxi := f.MinMax()
	if mini != -1 {
		s.TrainByValue(min)
	}
	if maxi != -1 {
		s.TrainByValue(max)
	}
}

// TrainByValue updates the domain of s with the given values.
func (s *Scale) TrainByValue(xs ...float64) {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		if x < s.DomainMin {
			s.DomainMin = x
		}
		if x > s.DomainMax {
			s.DomainMax = x
		}
	}
}

// Trained reports whether s has seen any value.
func (s *Scale) Trained() bool {
	return s.DomainMin <= s.DomainMax
}

// Level returns the position of the discrete level name, adding it to the
// scale if it is new.
func (s *Scale) Level(name string) float64 {
	for i, l := range s.Levels {
		if l == name {
			return float64(i)
		}
	}
	s.Levels = append(s.Levels, name)
	return float64(len(s.Levels) - 1)
}

// discretize replaces the values of the discrete field f by the position
// of their level on s.
func (s *Scale) discretize(f Field) Field {
	s.Discrete = true
	pos := NewField(len(f.Data), Float, f.Pool)
	for i, x := range f.Data {
		if math.IsNaN(x) {
			pos.Data[i] = x
			continue
		}
		pos.Data[i] = s.Level(f.String(x))
	}
	return pos
}

// Apply configures the gonum axis ax from s.
func (s *Scale) Apply(ax *plot.Axis) {
	if s.Label != "" {
		ax.Label.Text = s.Label
	}

	format := s.Format
	if format == nil {
		format = func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	}
	switch {
	case s.Discrete:
		ticks := make([]plot.Tick, len(s.Levels))
		for i, l := range s.Levels {
			ticks[i] = plot.Tick{Value: float64(i), Label: l}
		}
		ax.Tick.Marker = plot.ConstantTicks(ticks)
		ax.Min, ax.Max = -0.5, float64(len(s.Levels))-0.5
		ax.Padding = 0
	case len(s.Breaks) > 0:
		ticks := make([]plot.Tick, len(s.Breaks))
		for i, b := range s.Breaks {
			ticks[i] = plot.Tick{Value: b, Label: format(b)}
		}
		ax.Tick.Marker = plot.ConstantTicks(ticks)
	}

	if s.Limits != nil {
		ax.Min, ax.Max = s.Limits[0], s.Limits[1]
	}
	if s.Tight {
		ax.Padding = vg.Length(0)
	}
	if s.Inverted {
		ax.Scale = plot.InvertedScale{Normalizer: ax.Scale}
	}
}
