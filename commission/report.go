package commission

import (
	"fmt"
	"os"

	"github.com/vdobler/oxyplot/oxygen"
	"github.com/vdobler/oxyplot/stat"
	"gopkg.in/yaml.v3"
)

// ReportFile is the name of the summary written next to the charts.
const ReportFile = "commissioning_summary.yaml"

// Report collects the numeric results of a pipeline run.
type Report struct {
	Welch       bool               `yaml:"welch"`
	Alpha       float64            `yaml:"alpha"`
	Reference   oxygen.Reference   `yaml:"reference"`
	Experiments []ExperimentReport `yaml:"experiments"`
	Meta        *MetaReport        `yaml:"meta,omitempty"`
}

type ExperimentReport struct {
	ID          string            `yaml:"id"`
	Source      string            `yaml:"source"`
	Rows        int               `yaml:"rows"`
	Charts      []string          `yaml:"charts,omitempty"`
	Summary     []GroupSummary    `yaml:"summary,omitempty"`
	Medians     []InstrumentValue `yaml:"medians,omitempty"`
	Comparisons []Comparison      `yaml:"comparisons,omitempty"`
}

// GroupSummary is the description of the measurements of one group.
type GroupSummary struct {
	Keys         []string `yaml:"group,flow,omitempty"`
	stat.Summary `yaml:",inline"`
}

// Comparison is a t-test of instrument A against B, optionally at a
// single depth.
type Comparison struct {
	A           string           `yaml:"a"`
	B           string           `yaml:"b"`
	Depth       *float64         `yaml:"depth,omitempty"`
	TTest       stat.TTestResult `yaml:"ttest"`
	Significant bool             `yaml:"significant"`
	Note        string           `yaml:"note,omitempty"`
}

type InstrumentValue struct {
	Instrument string  `yaml:"instrument"`
	Value      float64 `yaml:"value"`
}

// MetaReport is the variability analysis of the combined table.
type MetaReport struct {
	Groups      []GroupSummary    `yaml:"groups"`
	MeanStd     []InstrumentValue `yaml:"mean_std"`
	ANOVA       stat.FTestResult  `yaml:"anova"`
	Significant bool              `yaml:"significant"`
}

// Experiment returns the report of the experiment id or nil.
func (r *Report) Experiment(id string) *ExperimentReport {
	for i := range r.Experiments {
		if r.Experiments[i].ID == id {
			return &r.Experiments[i]
		}
	}
	return nil
}

// Marshal encodes r as YAML.
func (r *Report) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// Save writes r as YAML to file.
func (r *Report) Save(file string) error {
	b, err := r.Marshal()
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(file, b, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// LoadReport reads a report written by Save.
func LoadReport(file string) (*Report, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", file, err)
	}
	return &r, nil
}
