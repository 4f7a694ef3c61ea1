package oxyplot

import (
	"strings"
	"testing"
)

func TestFieldLevels(t *testing.T) {
	df := readMeasurement(t)

	pressure := Levels(df, "Pressure")
	if got := pressure.Elements(); len(got) != 3 || got[0] != 5 || got[2] != 800 {
		t.Errorf("Got pressure levels %v", got)
	}
	if pressure.Contains(40.5) || !pressure.Contains(40) {
		t.Errorf("Bad membership in %v", pressure)
	}

	// String levels are pool indices in order of first appearance.
	inst := Levels(df, "Instrument").Elements()
	f := df.Columns["Instrument"]
	var names []string
	for _, x := range inst {
		names = append(names, f.String(x))
	}
	if strings.Join(names, "|") != "Old|New A|New B" {
		t.Errorf("Got %v", names)
	}
}

func TestStringSet(t *testing.T) {
	s := NewStringSet("Profile_Comp", "Atmos_NewB", "Profile_Comp")
	if len(s) != 2 {
		t.Errorf("Got %v", s)
	}
	if !s.Contains("Atmos_NewB") || s.Contains("Atmos") {
		t.Errorf("Bad membership in %v", s)
	}
	if got := strings.Join(s.Elements(), ","); got != "Atmos_NewB,Profile_Comp" {
		t.Errorf("Got %q", got)
	}
}

func TestStringPool(t *testing.T) {
	sp := NewStringPool()
	for i, s := range []string{"Old", "New A", "Old", "New B"} {
		idx := sp.Add(s)
		if want := []int{0, 1, 0, 2}[i]; idx != want {
			t.Errorf("Add(%q) = %d, want %d", s, idx, want)
		}
	}
	if sp.Find("New B") != 2 || sp.Find("Brand New") != -1 {
		t.Errorf("Bad Find")
	}
	if sp.Get(1) != "New A" || sp.Get(7) != "--NA--" {
		t.Errorf("Bad Get")
	}
}
