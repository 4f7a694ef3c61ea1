// Package commission runs the dissolved oxygen commissioning analysis:
// descriptive statistics, significance tests and charts comparing the
// instruments, summarized in a YAML report.
package commission

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/vdobler/oxyplot"
	"github.com/vdobler/oxyplot/config"
	"github.com/vdobler/oxyplot/oxygen"
	"github.com/vdobler/oxyplot/stat"
	"go.uber.org/zap"
)

// Pipeline processes the experiments read from Source and writes charts
// and the report to Out.
type Pipeline struct {
	Source      Source
	Out         string
	Welch       bool
	Experiments []Experiment
	Reference   oxygen.Reference

	Log     *zap.Logger
	Console io.Writer
}

// New sets up the pipeline of the full catalogue.
func New(cfg config.Config, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		Source:      NewSource(cfg.Data, cfg.HTTPTimeout),
		Out:         cfg.Out,
		Welch:       cfg.Welch,
		Experiments: Catalogue,
		Reference:   oxygen.NewReference(Salinity, Temperature),
		Log:         log,
		Console:     os.Stdout,
	}
}

// Run processes all experiments in order and stops at the first error.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	if p.Log == nil {
		p.Log = zap.NewNop()
	}
	if p.Console == nil {
		p.Console = io.Discard
	}
	if err := os.MkdirAll(p.Out, 0o755); err != nil {
		return nil, err
	}

	report := &Report{Welch: p.Welch, Alpha: stat.Alpha, Reference: p.Reference}
	p.Log.Info("saturation reference",
		zap.Float64("salinity", p.Reference.Salinity),
		zap.Float64("temperature", p.Reference.Temperature),
		zap.Float64("center", p.Reference.Center))

	for _, e := range p.Experiments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		er, meta, err := p.experiment(ctx, e)
		if err != nil {
			return nil, fmt.Errorf("experiment %s: %w", e.ID, err)
		}
		report.Experiments = append(report.Experiments, er)
		if meta != nil {
			report.Meta = meta
		}
	}

	file := filepath.Join(p.Out, ReportFile)
	if err := report.Save(file); err != nil {
		return nil, err
	}
	p.Log.Info("saved", zap.String("file", file))
	return report, nil
}

func (p *Pipeline) experiment(ctx context.Context, e Experiment) (ExperimentReport, *MetaReport, error) {
	er := ExperimentReport{ID: e.ID, Source: p.Source.Location(e.CSV)}
	df, err := readTable(ctx, p.Source, e.CSV)
	if err != nil {
		return er, nil, err
	}
	er.Rows = df.N
	p.Log.Debug("loaded", zap.String("experiment", e.ID), zap.String("source", er.Source), zap.Int("rows", df.N))

	for _, c := range e.Charts {
		file, err := p.save(c, df)
		if err != nil {
			return er, nil, err
		}
		er.Charts = append(er.Charts, c.File)
		p.Log.Info("saved", zap.String("experiment", e.ID), zap.String("file", file))
	}

	if e.Summarize {
		groups, err := describe(df, e.GroupBy...)
		if err != nil {
			return er, nil, err
		}
		er.Summary = groups
		printTable(p.Console, fmt.Sprintf("Descriptive statistics of %s", e.CSV), e.GroupBy, groups)
	}

	if e.Median {
		if er.Medians, err = medians(df); err != nil {
			return er, nil, err
		}
		for _, m := range er.Medians {
			fmt.Fprintf(p.Console, "Median of %s: %s\n", m.Instrument, formatValue(m.Value))
		}
	}

	for _, pair := range e.Pairs {
		c, err := p.compare(df, pair, math.NaN())
		if err != nil {
			return er, nil, err
		}
		er.Comparisons = append(er.Comparisons, c)
		fmt.Fprintf(p.Console, "Comparison of the %s instrument to %s, p-value: %g\n", pair.A, pair.B, c.TTest.P)
		if c.Significant {
			fmt.Fprintln(p.Console, "Significance!")
		}
	}

	if len(e.Depths) > 0 {
		fmt.Fprintln(p.Console, "For the tested depths, the t-test p-value is shown")
	}
	for _, d := range e.Depths {
		c, err := p.compare(df, Pair{NewA, Old}, d)
		if err != nil {
			return er, nil, err
		}
		er.Comparisons = append(er.Comparisons, c)
		fmt.Fprintf(p.Console, "At depth: %g the p-value is: %g\n", d, c.TTest.P)
	}

	if !e.Meta {
		return er, nil, nil
	}
	meta, err := p.meta(df)
	return er, meta, err
}

func (p *Pipeline) save(c Chart, df *oxyplot.DataFrame) (string, error) {
	plot, err := c.Compose(df, p.Reference)
	if err != nil {
		return "", err
	}
	file := filepath.Join(p.Out, c.File)
	if err := plot.Save(file); err != nil {
		return "", err
	}
	return file, nil
}
