package commission

// Column names of the measurement tables.
const (
	InstrumentCol = "Instrument"
	ExperimentCol = "Experiment"
	O2Col         = "O2µmol/L"
	PressureCol   = "Pressure"
	SampleCol     = "Sample"
)

// The instruments under comparison.
const (
	NewA = "New A"
	NewB = "New B"
	Old  = "Old"
)

// Conditions of the atmospheric saturation experiments.
const (
	Salinity    = 0
	Temperature = 21.5
)

// ChartKind selects how a table is drawn.
type ChartKind int

const (
	// Boxplot of O2 per instrument.
	Boxplot ChartKind = iota
	// SamplePlot shows O2 against the row number as points.
	SamplePlot
	// ProfilePlot shows O2 against pressure, pressure increasing downwards.
	ProfilePlot
)

func (k ChartKind) String() string {
	switch k {
	case Boxplot:
		return "boxplot"
	case SamplePlot:
		return "sample"
	case ProfilePlot:
		return "profile"
	}
	return "?"
}

// Overlay draws the saturation reference lines from XMin to XMax. The
// annotations "+1µM", "+1%" and "Calc. Sat." start at the x positions in
// LabelX and sit 0.25 below their line, CenterDrop below the center line.
type Overlay struct {
	XMin, XMax float64
	LabelX     [3]float64
	CenterDrop float64
}

// Chart is one image produced from an experiment.
type Chart struct {
	Kind   ChartKind
	Title  string
	File   string
	XLabel string

	Overlay *Overlay
	// XLim fixes the x range.
	XLim *[2]float64
}

// Pair is a two-sample comparison of instruments.
type Pair struct {
	A, B string
}

// Experiment is one commissioning table together with what is drawn and
// computed from it.
type Experiment struct {
	ID  string
	CSV string

	Charts []Chart

	// Summarize prints and reports the descriptive statistics of O2,
	// grouped by the GroupBy columns.
	Summarize bool
	GroupBy   []string

	Pairs  []Pair
	Median bool

	// Depths are the pressures at which NewA and Old are compared.
	Depths []float64

	// Meta runs the analysis of variability over all experiments.
	Meta bool
}

// Catalogue lists the experiments in the order they are processed.
var Catalogue = []Experiment{
	{
		ID:  "iodate",
		CSV: "independent_iodate.csv",
		Charts: []Chart{
			{Kind: Boxplot, Title: "Independent Iodate Standard", File: "independent_iodate_standards.svg"},
		},
		Summarize: true,
		GroupBy:   []string{InstrumentCol},
	},
	{
		ID:  "dep1_single",
		CSV: "dep_1_deep_replicates_single_niskins.csv",
		Charts: []Chart{
			{Kind: Boxplot, Title: "D1 Replicate Samples: 1 Niskin ea", File: "replicate_deep_samples_1_single.svg"},
		},
		Summarize: true,
		GroupBy:   []string{InstrumentCol},
		Pairs:     []Pair{{NewA, Old}, {NewB, Old}},
	},
	{
		ID:  "dep1_shared",
		CSV: "dep_1_deep_replicates_shared_niskins.csv",
		Charts: []Chart{
			{Kind: Boxplot, Title: "D1 Replicate Samples: 2 Niskin shared", File: "replicate_deep_samples_1_shared.svg"},
		},
		Summarize: true,
		GroupBy:   []string{InstrumentCol},
	},
	{
		ID:  "atmos_all",
		CSV: "atmospheric_diff_instruments.csv",
		Charts: []Chart{
			{Kind: Boxplot, Title: "Atmospheric Saturated Sample", File: "atmospheric_diff_instruments.svg"},
			{
				Kind:    Boxplot,
				Title:   "Atmospheric Saturated Sample w/QC Bars",
				File:    "atmospheric_diff_instruments_with_bars.svg",
				Overlay: &Overlay{XMin: -0.5, XMax: 2.5, LabelX: [3]float64{2.28, 2.32, 2.14}, CenterDrop: 0.25},
			},
		},
		Summarize: true,
		GroupBy:   []string{InstrumentCol},
	},
	{
		ID:  "atmos_one",
		CSV: "atmospheric_one_instrument.csv",
		Charts: []Chart{
			{Kind: SamplePlot, Title: "Atmospheric Saturated Sample: Instrument New B", File: "atmospheric_one_instrument.svg"},
			{
				Kind:    SamplePlot,
				Title:   "Atmospheric Saturated Sample: Instrument New B",
				File:    "atmospheric_one_instrument_with_bars.svg",
				Overlay: &Overlay{XMin: -1, XMax: 13, LabelX: [3]float64{12, 12.18, 11.4}, CenterDrop: 0.25},
				XLim:    &[2]float64{-1, 13},
			},
			{
				Kind:    Boxplot,
				Title:   "Atmospheric Saturated Sample: Instrument New B",
				File:    "atmospheric_one_instrument_with_bars-boxplot-version.svg",
				XLabel:  SampleCol,
				Overlay: &Overlay{XMin: -0.5, XMax: 0.5, LabelX: [3]float64{0.42, 0.44, 0.38}, CenterDrop: 0.23},
			},
		},
		Summarize: true,
	},
	{
		ID:  "profile",
		CSV: "profile_comparison.csv",
		Charts: []Chart{
			{Kind: ProfilePlot, Title: "Profile Comparison", File: "profile_comparison.svg"},
		},
		Depths: []float64{5, 40, 800, 1000},
	},
	{
		ID:  "dep2",
		CSV: "dep_2_deep_replicates.csv",
		Charts: []Chart{
			{Kind: Boxplot, Title: "D2 Replicate Samples", File: "replicate_deep_samples_2.svg"},
		},
		Median: true,
		Pairs:  []Pair{{NewA, Old}, {NewB, Old}, {NewA, NewB}},
	},
	{
		ID:   "combined",
		CSV:  "combined.csv",
		Meta: true,
	},
}
