package sim

import (
	"fmt"
	"math"

	"github.com/lisasim/lisasim/sim/trace"
)

// TimeGrid is an evenly spaced set of reception times Start, Start+Step, ...
// up to and including End.
type TimeGrid struct {
	Start float64
	End   float64
	Step  float64
}

// Validate checks that the grid is finite and non-empty.
func (g TimeGrid) Validate() error {
	for _, v := range []float64{g.Start, g.End, g.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("time grid must be finite, got start=%v end=%v step=%v", g.Start, g.End, g.Step)
		}
	}
	if !(g.Step > 0) {
		return fmt.Errorf("time grid step must be positive, got %v", g.Step)
	}
	if g.End < g.Start {
		return fmt.Errorf("time grid end %v precedes start %v", g.End, g.Start)
	}
	return nil
}

// Len returns the number of grid points.
func (g TimeGrid) Len() int {
	// Tolerate rounding so that End itself is included.
	return int(math.Floor((g.End-g.Start)/g.Step+1e-9)) + 1
}

// At returns the i-th grid time.
func (g TimeGrid) At(i int) float64 {
	return g.Start + float64(i)*g.Step
}

// SampleGeometry evaluates the travel times of arms at every grid time in
// increasing order and appends them to tr. With a full trace it also records
// lines of sight and craft positions. observe, when non-nil, sees every
// evaluation and its error. The first error stops sampling.
func SampleGeometry(g Geometry, grid TimeGrid, arms []Arm, tr *trace.GeometryTrace, observe func(Arm, error)) error {
	if err := grid.Validate(); err != nil {
		return err
	}
	for _, a := range arms {
		a.MustValid()
	}
	n := grid.Len()
	for i := 0; i < n; i++ {
		t := grid.At(i)
		for _, a := range arms {
			d, err := g.TravelTime(a, t)
			if observe != nil {
				observe(a, err)
			}
			if err != nil {
				return fmt.Errorf("sampling arm %d at t=%g: %w", a, t, err)
			}
			if !tr.Enabled() {
				continue
			}
			rec := trace.SampleRecord{Time: t, Arm: int(a), TravelTime: d}
			if tr.Full() {
				los, err := LineOfSightArray(g, a, t)
				if err != nil {
					return fmt.Errorf("sampling arm %d at t=%g: %w", a, t, err)
				}
				rec.LineOfSight = &los
			}
			tr.RecordSample(rec)
		}
		if tr.Full() {
			for c := Craft(1); c <= 3; c++ {
				tr.RecordPosition(trace.PositionRecord{Time: t, Craft: int(c), Position: PositionArray(g, c, t)})
			}
		}
	}
	return nil
}
