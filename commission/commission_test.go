package commission

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdobler/oxyplot"
	"github.com/vdobler/oxyplot/oxygen"
	"github.com/vdobler/oxyplot/stat"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var tables = map[string]string{
	"independent_iodate.csv": "Instrument,O2µmol/L\n" +
		"Old,278.1\nOld,278.3\nOld,278.0\n" +
		"New A,278.4\nNew A,278.2\nNew A,278.5\n" +
		"New B,277.9\nNew B,278.0\nNew B,278.2\n",
	"dep_1_deep_replicates_single_niskins.csv": "Instrument,O2µmol/L\n" +
		"Old,190.2\nOld,190.6\nOld,190.4\nOld,190.3\n" +
		"New A,191.5\nNew A,191.7\nNew A,191.6\nNew A,191.9\n" +
		"New B,190.1\nNew B,190.5\nNew B,190.6\nNew B,190.2\n",
	"dep_1_deep_replicates_shared_niskins.csv": "Instrument,O2µmol/L\n" +
		"Old,190.2\nOld,190.5\n" +
		"New A,190.4\nNew A,190.3\n" +
		"New B,190.6\nNew B,190.1\n",
	"atmospheric_diff_instruments.csv": "Instrument,O2µmol/L\n" +
		"Old,275.1\nOld,275.6\nOld,275.4\n" +
		"New A,275.3\nNew A,275.8\nNew A,275.2\n" +
		"New B,276.0\nNew B,275.9\nNew B,275.5\n",
	"atmospheric_one_instrument.csv": "Instrument,O2µmol/L\n" +
		"New B,275.2\nNew B,275.4\nNew B,275.9\nNew B,275.3\n" +
		"New B,275.6\nNew B,275.5\nNew B,275.1\nNew B,275.7\n" +
		"New B,275.4\nNew B,275.0\nNew B,275.8\nNew B,275.3\n",
	"profile_comparison.csv": "Instrument,O2µmol/L,Pressure\n" +
		"New A,240.1,5\nNew A,240.3,5\nOld,239.8,5\nOld,240.0,5\n" +
		"New A,251.2,40\nNew A,251.0,40\nOld,251.1,40\nOld,250.9,40\n" +
		"New A,180.4,800\nNew A,180.6,800\nOld,179.2,800\nOld,179.3,800\n" +
		"New A,185.0,1000\nNew A,185.3,1000\nOld,185.1,1000\nOld,185.4,1000\n",
	"dep_2_deep_replicates.csv": "Instrument,O2µmol/L\n" +
		"Old,201.2\nOld,201.5\nOld,201.1\n" +
		"New A,201.9\nNew A,202.3\nNew A,202.0\n" +
		"New B,201.4\nNew B,201.3\nNew B,201.6\n",
	"combined.csv": "Instrument,Experiment,O2µmol/L\n" +
		"Old,Iodate,278.1\nOld,Iodate,278.3\nOld,Deep,190.2\nOld,Deep,190.6\n" +
		"New A,Iodate,278.4\nNew A,Iodate,278.5\nNew A,Deep,191.5\nNew A,Deep,191.6\n" +
		"New B,Iodate,277.9\nNew B,Iodate,278.2\nNew B,Deep,190.1\nNew B,Deep,190.5\n" +
		"New B,Atmos_NewB,275.2\nNew B,Atmos_NewB,276.4\n" +
		"Old,Profile_Comp,240.0\nOld,Profile_Comp,180.0\n" +
		"New A,Single,278.0\n",
}

func writeTables(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range tables {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func testPipeline(t *testing.T, src Source) (*Pipeline, *bytes.Buffer) {
	t.Helper()
	var console bytes.Buffer
	return &Pipeline{
		Source:      src,
		Out:         t.TempDir(),
		Experiments: Catalogue,
		Reference:   oxygen.NewReference(Salinity, Temperature),
		Log:         zap.NewNop(),
		Console:     &console,
	}, &console
}

func TestRun(t *testing.T) {
	p, console := testPipeline(t, DirSource{Dir: writeTables(t)})
	report, err := p.Run(context.Background())
	require.NoError(t, err)

	for _, e := range Catalogue {
		for _, c := range e.Charts {
			fi, err := os.Stat(filepath.Join(p.Out, c.File))
			if assert.NoError(t, err, c.File) {
				assert.NotZero(t, fi.Size(), c.File)
			}
		}
	}
	_, err = os.Stat(filepath.Join(p.Out, ReportFile))
	require.NoError(t, err)

	require.Len(t, report.Experiments, len(Catalogue))
	assert.Equal(t, stat.Alpha, report.Alpha)

	iodate := report.Experiment("iodate")
	require.NotNil(t, iodate)
	require.Len(t, iodate.Summary, 3)
	assert.Equal(t, []string{"New A"}, iodate.Summary[0].Keys)
	assert.Equal(t, 3, iodate.Summary[0].Count)
	assert.InDelta(t, 278.3666666, iodate.Summary[0].Mean, 1e-6)

	one := report.Experiment("atmos_one")
	require.Len(t, one.Summary, 1)
	assert.Empty(t, one.Summary[0].Keys)
	assert.Equal(t, 12, one.Summary[0].Count)
	assert.Len(t, one.Charts, 3)

	dep1 := report.Experiment("dep1_single")
	require.Len(t, dep1.Comparisons, 2)
	assert.True(t, dep1.Comparisons[0].Significant, "New A reads clearly higher than Old")

	profile := report.Experiment("profile")
	require.Len(t, profile.Comparisons, 4)
	for i, d := range []float64{5, 40, 800, 1000} {
		c := profile.Comparisons[i]
		require.NotNil(t, c.Depth)
		assert.Equal(t, d, *c.Depth)
		assert.Equal(t, 2, c.TTest.N1)
		assert.Equal(t, 2, c.TTest.N2)
	}

	dep2 := report.Experiment("dep2")
	require.Len(t, dep2.Comparisons, 3)
	assert.Equal(t, []InstrumentValue{{NewA, 202.0}, {NewB, 201.4}, {Old, 201.2}}, dep2.Medians)

	for _, e := range report.Experiments {
		for _, c := range e.Comparisons {
			assert.Equal(t, c.TTest.P < 0.05, c.Significant, "%s %s-%s", e.ID, c.A, c.B)
		}
	}

	require.NotNil(t, report.Meta)
	assert.Len(t, report.Meta.Groups, 8, "Profile_Comp is excluded")
	single := report.Meta.Groups[2]
	assert.Equal(t, []string{NewA, "Single"}, single.Keys)
	assert.True(t, math.IsNaN(single.Std))
	require.Len(t, report.Meta.MeanStd, 3)
	assert.Equal(t, NewA, report.Meta.MeanStd[0].Instrument)
	assert.InDelta(t, 0.1/math.Sqrt2, report.Meta.MeanStd[0].Value, 1e-9, "NaN std of a single observation is skipped")
	assert.Equal(t, 3, report.Meta.ANOVA.Groups)
	assert.Equal(t, 6, report.Meta.ANOVA.N, "Atmos_NewB and NaN stds are left out of the test")
	assert.Equal(t, report.Meta.ANOVA.P < 0.05, report.Meta.Significant)

	out := console.String()
	for _, s := range []string{
		"Comparison of the New A instrument to Old, p-value:",
		"At depth: 800 the p-value is:",
		"Median of New A:",
		"Mean standard deviation per instrument",
		"count",
	} {
		assert.Contains(t, out, s)
	}
}

func TestRunIdempotent(t *testing.T) {
	src := DirSource{Dir: writeTables(t)}
	p1, _ := testPipeline(t, src)
	p2, _ := testPipeline(t, src)
	r1, err := p1.Run(context.Background())
	require.NoError(t, err)
	r2, err := p2.Run(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(r1, r2, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("Reports differ (-first +second):\n%s", diff)
	}

	b1, err := os.ReadFile(filepath.Join(p1.Out, ReportFile))
	require.NoError(t, err)
	b2, err := os.ReadFile(filepath.Join(p2.Out, ReportFile))
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b2))

	for _, e := range Catalogue {
		for _, c := range e.Charts {
			s1, err := os.ReadFile(filepath.Join(p1.Out, c.File))
			require.NoError(t, err)
			s2, err := os.ReadFile(filepath.Join(p2.Out, c.File))
			require.NoError(t, err)
			assert.True(t, bytes.Equal(s1, s2), "%s differs between runs", c.File)
		}
	}
}

func TestLoadReport(t *testing.T) {
	p, _ := testPipeline(t, DirSource{Dir: writeTables(t)})
	report, err := p.Run(context.Background())
	require.NoError(t, err)

	loaded, err := LoadReport(filepath.Join(p.Out, ReportFile))
	require.NoError(t, err)
	if diff := cmp.Diff(report, loaded, cmpopts.EquateNaNs(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Loaded report differs (-want +got):\n%s", diff)
	}
}

func TestRunMissingTable(t *testing.T) {
	dir := writeTables(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "dep_2_deep_replicates.csv")))
	p, _ := testPipeline(t, DirSource{Dir: dir})
	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "experiment dep2")
}

func TestRunCanceled(t *testing.T) {
	p, _ := testPipeline(t, DirSource{Dir: writeTables(t)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDegenerateComparison(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p := &Pipeline{Log: zap.New(core)}
	df, err := readTable(context.Background(), DirSource{Dir: writeTables(t)}, "dep_1_deep_replicates_shared_niskins.csv")
	require.NoError(t, err)

	c, err := p.compare(df, Pair{"New A", "Brand New"}, math.NaN())
	require.NoError(t, err)
	assert.True(t, math.IsNaN(c.TTest.P))
	assert.False(t, c.Significant)
	assert.NotEmpty(t, c.Note)
	assert.Nil(t, c.Depth)
	assert.Equal(t, 1, logs.FilterMessage("t-test not possible").Len())
}

func TestNewSource(t *testing.T) {
	assert.IsType(t, DirSource{}, NewSource("data", time.Second))
	src := NewSource("https://example.org/data/", time.Second)
	require.IsType(t, HTTPSource{}, src)
	assert.Equal(t, "https://example.org/data/combined.csv", src.Location("combined.csv"))
	assert.Equal(t, time.Second, src.(HTTPSource).Client.Timeout)
}

func TestHTTPSource(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content, ok := tables[strings.TrimPrefix(r.URL.Path, "/data/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(content))
	}))
	defer ts.Close()

	src := NewSource(ts.URL+"/data", 5*time.Second)
	df, err := readTable(context.Background(), src, "dep_2_deep_replicates.csv")
	require.NoError(t, err)
	assert.Equal(t, 9, df.N)

	_, err = readTable(context.Background(), src, "nope.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestOverlayFrames(t *testing.T) {
	ref := oxygen.NewReference(Salinity, Temperature)
	o := Overlay{XMin: -1, XMax: 13, LabelX: [3]float64{12, 12.18, 11.4}, CenterDrop: 0.25}
	lines, notes, err := o.frames(ref)
	require.NoError(t, err)

	ic, err := lines.Floats("intercept")
	require.NoError(t, err)
	assert.Equal(t, []float64{ref.Center, ref.MinusPct, ref.PlusPct, ref.MinusUM, ref.PlusUM}, ic)
	colors, err := lines.Strings("color")
	require.NoError(t, err)
	assert.Equal(t, []string{CenterColor, PercentColor, PercentColor, UMolColor, UMolColor}, colors)

	y, err := notes.Floats("y")
	require.NoError(t, err)
	assert.Equal(t, []float64{ref.Center + 1 - 0.25, ref.Center*1.01 - 0.25, ref.Center - 0.25}, y)
	text, err := notes.Strings("text")
	require.NoError(t, err)
	assert.Equal(t, []string{"+1µM", "+1%", "Calc. Sat."}, text)
}

func TestFillLengthMismatch(t *testing.T) {
	df := oxyplot.NewDataFrame("reference", nil)
	err := fill(df,
		column{name: "intercept", floats: []float64{1, 2}},
		column{name: "color", strings: []string{"red"}},
		column{name: "slope", floats: []float64{0, 0}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"color"`)
	assert.False(t, df.Has("slope"))

	require.NoError(t, fill(oxyplot.NewDataFrame("ok", nil),
		column{name: "x", floats: []float64{1}},
		column{name: "text", strings: []string{"+1%"}},
	))
}

func TestComposeOverlay(t *testing.T) {
	df, err := readTable(context.Background(), DirSource{Dir: writeTables(t)}, "atmospheric_one_instrument.csv")
	require.NoError(t, err)
	ref := oxygen.NewReference(Salinity, Temperature)

	var chart Chart
	for _, c := range Catalogue[4].Charts {
		if c.XLim != nil {
			chart = c
		}
	}
	p, err := chart.Compose(df, ref)
	require.NoError(t, err)
	gp, err := p.Build()
	require.NoError(t, err)
	assert.Equal(t, -1.0, gp.X.Min)
	assert.Equal(t, 13.0, gp.X.Max)
	assert.GreaterOrEqual(t, gp.Y.Max, ref.PlusPct)
	assert.Equal(t, "Sample", gp.X.Label.Text)
	assert.Len(t, p.Layers, 3)
}
