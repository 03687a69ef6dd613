package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/lisasim/lisasim/sim"
	"github.com/lisasim/lisasim/sim/telemetry"
	"github.com/lisasim/lisasim/sim/trace"
)

// RunReport is the YAML document written at the end of a run.
type RunReport struct {
	RunID     string                 `yaml:"run_id"`
	Model     string                 `yaml:"model"`
	Seed      int64                  `yaml:"seed"`
	Noisy     bool                   `yaml:"noisy"`
	Grid      GridReport             `yaml:"grid"`
	Arms      []int                  `yaml:"arms"`
	Summary   *trace.TraceSummary    `yaml:"summary"`
	Telemetry []MetricTotal          `yaml:"telemetry"`
	Samples   []trace.SampleRecord   `yaml:"samples,omitempty"`
	Positions []trace.PositionRecord `yaml:"positions,omitempty"`
}

// GridReport echoes the sampled time grid.
type GridReport struct {
	Start  float64 `yaml:"start"`
	End    float64 `yaml:"end"`
	Step   float64 `yaml:"step"`
	Points int     `yaml:"points"`
}

// MetricTotal is one telemetry total, summed over labels.
type MetricTotal struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

func newRunReport(opts runOptions, gt *trace.GeometryTrace, totals map[string]float64) *RunReport {
	r := &RunReport{
		RunID:   uuid.NewString(),
		Model:   opts.Spec.Geometry.Model,
		Seed:    opts.Spec.Seed,
		Noisy:   opts.Spec.Noise != nil,
		Grid:    GridReport{Start: opts.Grid.Start, End: opts.Grid.End, Step: opts.Grid.Step, Points: opts.Grid.Len()},
		Summary: trace.Summarize(gt),
	}
	for _, a := range opts.Arms {
		r.Arms = append(r.Arms, int(a))
	}
	for _, name := range telemetry.SortedNames(totals) {
		r.Telemetry = append(r.Telemetry, MetricTotal{Name: name, Value: totals[name]})
	}
	if gt != nil {
		r.Samples = gt.Samples
		r.Positions = gt.Positions
	}
	return r
}

// writeReport marshals r to path, or to stdout when path is "" or "-".
func writeReport(path string, r *RunReport) error {
	if path == "" || path == "-" {
		return encodeReport(os.Stdout, r)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	if err := encodeReport(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func encodeReport(w io.Writer, r *RunReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// armLabel names a signed arm for legends and logs.
func armLabel(a sim.Arm) string {
	recv, emit := a.Crafts()
	return fmt.Sprintf("L%d (%d<-%d)", int(a), recv, emit)
}
