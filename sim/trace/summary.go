package trace

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ArmSummary aggregates the travel times recorded for one arm.
type ArmSummary struct {
	Arm        int     `yaml:"arm"`
	Count      int     `yaml:"count"`
	Min        float64 `yaml:"min"`
	Max        float64 `yaml:"max"`
	Mean       float64 `yaml:"mean"`
	StdDev     float64 `yaml:"std_dev"`
	PeakToPeak float64 `yaml:"peak_to_peak"`
}

// TraceSummary aggregates statistics from a GeometryTrace.
type TraceSummary struct {
	TotalSamples int          `yaml:"total_samples"`
	Arms         []ArmSummary `yaml:"arms"` // ordered 1, 2, 3, -1, -2, -3
}

// Summarize computes per-arm statistics from a GeometryTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(gt *GeometryTrace) *TraceSummary {
	summary := &TraceSummary{Arms: make([]ArmSummary, 0)}
	if gt == nil {
		return summary
	}
	summary.TotalSamples = len(gt.Samples)

	byArm := make(map[int][]float64)
	for _, s := range gt.Samples {
		byArm[s.Arm] = append(byArm[s.Arm], s.TravelTime)
	}
	for arm, xs := range byArm {
		lo, hi := floats.Min(xs), floats.Max(xs)
		mean, std := stat.MeanStdDev(xs, nil)
		if len(xs) == 1 {
			std = 0
		}
		summary.Arms = append(summary.Arms, ArmSummary{
			Arm:        arm,
			Count:      len(xs),
			Min:        lo,
			Max:        hi,
			Mean:       mean,
			StdDev:     std,
			PeakToPeak: hi - lo,
		})
	}
	sort.Slice(summary.Arms, func(i, j int) bool {
		return armOrder(summary.Arms[i].Arm) < armOrder(summary.Arms[j].Arm)
	})
	return summary
}

// armOrder sorts positive arms before negative ones, each by link.
func armOrder(arm int) int {
	if arm < 0 {
		return 3 - arm
	}
	return arm
}
