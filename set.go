package oxyplot

import (
	"sort"
)

// -------------------------------------------------------------------------
// Float Set

// FloatSet holds the distinct values of a field, e.g. the pool indices of
// the levels of a string field.
type FloatSet map[float64]struct{}

func NewFloatSet() FloatSet {
	return make(FloatSet)
}

func (s FloatSet) Add(x float64) {
	s[x] = struct{}{}
}

func (s FloatSet) Contains(x float64) bool {
	_, ok := s[x]
	return ok
}

// Elements returns the members of s in ascending order.
func (s FloatSet) Elements() []float64 {
	elems := make([]float64, 0, len(s))
	for x := range s {
		elems = append(elems, x)
	}
	sort.Float64s(elems)
	return elems
}

// -------------------------------------------------------------------------
// String Set

// StringSet is a set of formatted field values.
type StringSet map[string]struct{}

func NewStringSet(init ...string) StringSet {
	s := make(StringSet, len(init))
	for _, v := range init {
		s[v] = struct{}{}
	}
	return s
}

func (s StringSet) Contains(x string) bool {
	_, ok := s[x]
	return ok
}

// Elements returns the members of s in lexical order.
func (s StringSet) Elements() []string {
	elems := make([]string, 0, len(s))
	for x := range s {
		elems = append(elems, x)
	}
	sort.Strings(elems)
	return elems
}
