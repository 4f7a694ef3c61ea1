package commission

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/vdobler/oxyplot"
	"github.com/vdobler/oxyplot/stat"
	"go.uber.org/zap"
)

// Experiments of the combined table left out of the meta analysis.
const (
	ProfileExperiment = "Profile_Comp"
	AtmosNewB         = "Atmos_NewB"
)

// describe summarizes the O2 column of df per group of keys.
func describe(df *oxyplot.DataFrame, keys ...string) ([]GroupSummary, error) {
	desc, err := oxyplot.StatDescribe{Value: O2Col, GroupBy: keys}.Apply(df, nil)
	if err != nil {
		return nil, err
	}
	cols := make(map[string][]float64, len(oxyplot.DescribeColumns))
	for _, c := range oxyplot.DescribeColumns {
		if cols[c], err = desc.Floats(c); err != nil {
			return nil, err
		}
	}
	keyCols := make([][]string, len(keys))
	for j, k := range keys {
		if keyCols[j], err = desc.Strings(k); err != nil {
			return nil, err
		}
	}

	groups := make([]GroupSummary, desc.N)
	for i := range groups {
		g := GroupSummary{Summary: stat.Summary{
			Count:  int(cols["count"][i]),
			Mean:   cols["mean"][i],
			Std:    cols["std"][i],
			Min:    cols["min"][i],
			Q1:     cols["25%"][i],
			Median: cols["50%"][i],
			Q3:     cols["75%"][i],
			Max:    cols["max"][i],
		}}
		for j := range keys {
			g.Keys = append(g.Keys, keyCols[j][i])
		}
		groups[i] = g
	}
	return groups, nil
}

// printTable renders groups, key columns first, to w.
func printTable(w io.Writer, title string, keys []string, groups []GroupSummary) {
	headers := append(append([]string{}, keys...), oxyplot.DescribeColumns...)
	rows := make([][]string, len(groups))
	for i, g := range groups {
		s := g.Summary
		row := append([]string{}, g.Keys...)
		row = append(row, strconv.Itoa(s.Count))
		for _, x := range []float64{s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max} {
			row = append(row, formatValue(x))
		}
		rows[i] = row
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, t.Render())
}

func formatValue(x float64) string {
	if math.IsNaN(x) {
		return "NaN"
	}
	return strconv.FormatFloat(x, 'f', 6, 64)
}

// floatsOf returns the O2 values of instrument in df. If depth is not
// NaN only rows at that pressure are used.
func floatsOf(df *oxyplot.DataFrame, instrument string, depth float64) ([]float64, error) {
	inst, err := df.Strings(InstrumentCol)
	if err != nil {
		return nil, err
	}
	o2, err := df.Floats(O2Col)
	if err != nil {
		return nil, err
	}
	var pressure []float64
	if !math.IsNaN(depth) {
		if pressure, err = df.Floats(PressureCol); err != nil {
			return nil, err
		}
	}
	var xs []float64
	for i := range o2 {
		if inst[i] != instrument || (pressure != nil && pressure[i] != depth) {
			continue
		}
		xs = append(xs, o2[i])
	}
	return xs, nil
}

// compare runs the t-test of a against b. Degenerate samples are logged
// and reported with a NaN p-value.
func (p *Pipeline) compare(df *oxyplot.DataFrame, pair Pair, depth float64) (Comparison, error) {
	a, err := floatsOf(df, pair.A, depth)
	if err != nil {
		return Comparison{}, err
	}
	b, err := floatsOf(df, pair.B, depth)
	if err != nil {
		return Comparison{}, err
	}
	res, err := stat.TTest(a, b, p.Welch)
	c := Comparison{A: pair.A, B: pair.B, TTest: res, Significant: res.Significant()}
	if !math.IsNaN(depth) {
		d := depth
		c.Depth = &d
	}
	fields := []zap.Field{
		zap.String("a", pair.A),
		zap.String("b", pair.B),
		zap.Float64("p", res.P),
		zap.Bool("significant", c.Significant),
	}
	if c.Depth != nil {
		fields = append(fields, zap.Float64("depth", depth))
	}
	if err != nil {
		c.Note = err.Error()
		p.Log.Warn("t-test not possible", append(fields, zap.Error(err))...)
		return c, nil
	}
	p.Log.Info("t-test", fields...)
	return c, nil
}

// medians returns the median O2 per instrument in level order.
func medians(df *oxyplot.DataFrame) ([]InstrumentValue, error) {
	names, err := df.LevelNames(InstrumentCol)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	meds := make([]InstrumentValue, 0, len(names))
	for _, n := range names {
		xs, err := floatsOf(df, n, math.NaN())
		if err != nil {
			return nil, err
		}
		meds = append(meds, InstrumentValue{Instrument: n, Value: stat.Median(xs)})
	}
	return meds, nil
}

// meta analyses the variability of the instruments over all experiments
// of the combined table except the profile comparison.
func (p *Pipeline) meta(df *oxyplot.DataFrame) (*MetaReport, error) {
	df, err := df.Exclude(ExperimentCol, ProfileExperiment)
	if err != nil {
		return nil, err
	}
	keys := []string{InstrumentCol, ExperimentCol}
	groups, err := describe(df, keys...)
	if err != nil {
		return nil, fmt.Errorf("meta analysis: %w", err)
	}
	printTable(p.Console, "Descriptive statistics by instrument and experiment", keys, groups)

	var instruments []string
	stds := make(map[string][]float64)
	stdsForTest := make(map[string][]float64)
	for _, g := range groups {
		inst, exp := g.Keys[0], g.Keys[1]
		if _, ok := stds[inst]; !ok {
			instruments = append(instruments, inst)
		}
		stds[inst] = append(stds[inst], g.Std)
		if exp != AtmosNewB {
			stdsForTest[inst] = append(stdsForTest[inst], g.Std)
		}
	}

	m := &MetaReport{Groups: groups}
	fmt.Fprintln(p.Console, "Mean standard deviation per instrument")
	for _, inst := range instruments {
		var sum float64
		var n int
		for _, s := range stds[inst] {
			if !math.IsNaN(s) {
				sum += s
				n++
			}
		}
		mean := math.NaN()
		if n > 0 {
			mean = sum / float64(n)
		}
		m.MeanStd = append(m.MeanStd, InstrumentValue{Instrument: inst, Value: mean})
		fmt.Fprintf(p.Console, "%-10s %s\n", inst, formatValue(mean))
	}

	f, err := stat.OneWayANOVA(stdsForTest[NewA], stdsForTest[NewB], stdsForTest[Old])
	if err != nil {
		return nil, fmt.Errorf("meta analysis: %w", err)
	}
	m.ANOVA, m.Significant = f, f.Significant()
	fmt.Fprintf(p.Console, "F-test of the standard deviations: F=%g, p-value: %g\n", f.F, f.P)
	if m.Significant {
		fmt.Fprintln(p.Console, "Significance!")
	}
	p.Log.Info("F-test",
		zap.Float64("f", f.F),
		zap.Float64("p", f.P),
		zap.Bool("significant", m.Significant))
	return m, nil
}
