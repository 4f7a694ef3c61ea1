package oxyplot

import (
	"fmt"

	"github.com/vdobler/oxyplot/stat"
)

// Stat is the interface of statistical transform.
//
// Statistical transform take a data frame and produce an other data frame.
// This is typically done by "summarizing", "modeling" or "transforming"
// the data in a statistically significant way.
type Stat interface {
	// Name returns the name of this statistic.
	Name() string

	// Apply this statistic to data. The panel can be used to
	// access the current scales, e.g. if the x-range is needed.
	// The panel may be nil if the stat is used on its own.
	Apply(data *DataFrame, panel *Panel) (*DataFrame, error)

	// Info returns the StatInfo which describes how this
	// statistic can be used.
	Info() StatInfo
}

// StatInfo contains information about how a stat can be used.
type StatInfo struct {
	// NeededAes are the aestetics which must be present in the
	// data frame. If not all needed aestetics are mapped this
	// statistics cannot be applied.
	NeededAes []string

	// OptionalAes are the aestetics which are used by this
	// statistics if present, but it is no error if they are
	// not mapped.
	OptionalAes []string
}

func checkNeeded(s Stat, data *DataFrame) error {
	for _, aes := range s.Info().NeededAes {
		if !data.Has(aes) {
			return fmt.Errorf("%s on %s: %q: %w", s.Name(), data.Name, aes, ErrNoSuchColumn)
		}
	}
	return nil
}

// -------------------------------------------------------------------------
// StatDescribe

// StatDescribe summarizes the column Value (default "y") per group of the
// GroupBy columns: count, mean, std, min, 25%, 50%, 75% and max. The result
// has one row per group, sorted by group key, with the key columns as
// string fields.
type StatDescribe struct {
	Value   string
	GroupBy []string
}

var _ Stat = StatDescribe{}

// DescribeColumns are the summary columns produced by StatDescribe.
var DescribeColumns = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

func (StatDescribe) Name() string { return "StatDescribe" }

func (s StatDescribe) Info() StatInfo {
	return StatInfo{
		NeededAes:   []string{s.value()},
		OptionalAes: s.GroupBy,
	}
}

func (s StatDescribe) value() string {
	if s.Value == "" {
		return "y"
	}
	return s.Value
}

func (s StatDescribe) Apply(data *DataFrame, _ *Panel) (*DataFrame, error) {
	if data == nil || data.N == 0 {
		return nil, fmt.Errorf("StatDescribe: %w", ErrEmptyFrame)
	}
	if err := checkNeeded(s, data); err != nil {
		return nil, err
	}
	groups, err := data.Partition(s.GroupBy...)
	if err != nil {
		return nil, err
	}

	pool := data.Pool
	n := len(groups)
	result := NewDataFrame(fmt.Sprintf("describe of %s", data.Name), pool)
	result.N = n
	keys := make([]Field, len(s.GroupBy))
	for j := range keys {
		keys[j] = NewField(n, String, pool)
	}
	cols := make(map[string]Field, len(DescribeColumns))
	for _, c := range DescribeColumns {
		cols[c] = NewField(n, Float, pool)
	}
	cols["count"] = NewField(n, Int, pool)

	for i, g := range groups {
		ys, err := g.Frame.Floats(s.value())
		if err != nil {
			return nil, err
		}
		sum, err := stat.Describe(ys)
		if err != nil {
			return nil, fmt.Errorf("describe %s: %w", g.Frame.Name, err)
		}
		for j, k := range g.Keys {
			keys[j].Data[i] = float64(pool.Add(k))
		}
		cols["count"].Data[i] = float64(sum.Count)
		cols["mean"].Data[i] = sum.Mean
		cols["std"].Data[i] = sum.Std
		cols["min"].Data[i] = sum.Min
		cols["25%"].Data[i] = sum.Q1
		cols["50%"].Data[i] = sum.Median
		cols["75%"].Data[i] = sum.Q3
		cols["max"].Data[i] = sum.Max
	}

	for j, name := range s.GroupBy {
		result.Columns[name] = keys[j]
	}
	for name, f := range cols {
		result.Columns[name] = f
	}
	return result, nil
}

// -------------------------------------------------------------------------
// StatBoxplot

// StatBoxplot computes the box and whisker components of y for each
// distinct x. Whiskers reach Coef (default 1.5) interquartile ranges.
type StatBoxplot struct {
	Coef float64
}

var _ Stat = StatBoxplot{}

func (StatBoxplot) Name() string { return "StatBoxplot" }

func (StatBoxplot) Info() StatInfo {
	return StatInfo{
		NeededAes:   []string{"x", "y"},
		OptionalAes: []string{},
	}
}

func (s StatBoxplot) Apply(data *DataFrame, _ *Panel) (*DataFrame, error) {
	if data == nil || data.N == 0 {
		return nil, fmt.Errorf("StatBoxplot: %w", ErrEmptyFrame)
	}
	if err := checkNeeded(s, data); err != nil {
		return nil, err
	}
	coef := s.Coef
	if coef == 0 {
		coef = 1.5
	}
	xd, yd := data.Columns["x"].Data, data.Columns["y"].Data

	xs := Levels(data, "x").Elements()
	n := len(xs)
	ys := make(map[float64][]float64)
	for i := 0; i < data.N; i++ {
		ys[xd[i]] = append(ys[xd[i]], yd[i])
	}

	pool := data.Pool
	xf := NewField(n, data.Columns["x"].Type, pool)
	medf := NewField(n, Float, pool)
	minf, maxf := NewField(n, Float, pool), NewField(n, Float, pool)
	lowf, highf := NewField(n, Float, pool), NewField(n, Float, pool)
	q1f, q3f := NewField(n, Float, pool), NewField(n, Float, pool)
	outf := NewField(n, Vector, pool)

	for i, x := range xs {
		b, err := stat.BoxPlot(ys[x], coef)
		if err != nil {
			return nil, fmt.Errorf("boxplot of %s at x=%g: %w", data.Name, x, err)
		}
		xf.Data[i] = x
		minf.Data[i] = b.Min
		lowf.Data[i] = b.Low
		q1f.Data[i] = b.Lower
		medf.Data[i] = b.Middle
		q3f.Data[i] = b.Upper
		highf.Data[i] = b.High
		maxf.Data[i] = b.Max
		outf.Vec[i] = b.Outliers
	}

	result := NewDataFrame(fmt.Sprintf("boxplot of %s", data.Name), pool)
	result.N = n
	result.Columns["x"] = xf
	result.Columns["min"] = minf
	result.Columns["low"] = lowf
	result.Columns["q1"] = q1f
	result.Columns["mid"] = medf
	result.Columns["q3"] = q3f
	result.Columns["high"] = highf
	result.Columns["max"] = maxf
	result.Columns["outliers"] = outf

	return result, nil
}
