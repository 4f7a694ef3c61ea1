// Package oxygen computes the theoretical dissolved oxygen concentration of
// water in equilibrium with the atmosphere, after Weiss (1970).
package oxygen

import "math"

// UMolPerML converts an oxygen concentration in mL/L to µmol/L.
const UMolPerML = 44.66

// Kelvin is 0 °C in Kelvin.
const Kelvin = 273.15

// Weiss (1970) coefficients for mL/L.
const (
	a1 = -173.4292
	a2 = 249.6339
	a3 = 143.3483
	a4 = -21.8492
	b1 = -0.033096
	b2 = 0.014259
	b3 = -0.0017
)

// Saturation returns the saturation concentration of oxygen in mL/L for
// salinity s (psu) and temperature t (°C, ITS-90).
func Saturation(s, t float64) float64 {
	// ITS-90 to IPTS-68, then absolute.
	tk := t*1.00024 + Kelvin
	tt := tk / 100
	lnC := a1 + a2*(100/tk) + a3*math.Log(tt) + a4*tt +
		s*(b1+b2*tt+b3*tt*tt)
	return math.Exp(lnC)
}

// SaturationUMol is Saturation in µmol/L.
func SaturationUMol(s, t float64) float64 {
	return Saturation(s, t) * UMolPerML
}

// Reference is a saturation value with its tolerance bands, all in µmol/L.
type Reference struct {
	Salinity    float64 `yaml:"salinity"`
	Temperature float64 `yaml:"temperature"`

	Center   float64 `yaml:"center"`
	PlusPct  float64 `yaml:"plus_1pct"`
	MinusPct float64 `yaml:"minus_1pct"`
	PlusUM   float64 `yaml:"plus_1um"`
	MinusUM  float64 `yaml:"minus_1um"`
}

// NewReference computes the saturation at (s, t) and the bands at ±1 %
// and ±1 µmol/L around it.
func NewReference(s, t float64) Reference {
	c := SaturationUMol(s, t)
	return Reference{
		Salinity:    s,
		Temperature: t,
		Center:      c,
		PlusPct:     c * 1.01,
		MinusPct:    c * 0.99,
		PlusUM:      c + 1,
		MinusUM:     c - 1,
	}
}

// Lines returns the reference values from top to bottom.
func (r Reference) Lines() []float64 {
	return []float64{r.PlusPct, r.PlusUM, r.Center, r.MinusUM, r.MinusPct}
}
