package trace

import (
	"math"
	"testing"
)

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	gt := NewGeometryTrace(TraceConfig{Level: TraceLevelTravelTimes})

	// WHEN summarized
	summary := Summarize(gt)

	// THEN all counts are zero
	if summary.TotalSamples != 0 {
		t.Errorf("expected 0 samples, got %d", summary.TotalSamples)
	}
	if len(summary.Arms) != 0 {
		t.Errorf("expected no arm summaries, got %d", len(summary.Arms))
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary == nil || summary.TotalSamples != 0 || summary.Arms == nil {
		t.Errorf("expected non-nil zero summary, got %+v", summary)
	}
}

func TestSummarize_PerArmStatistics(t *testing.T) {
	// GIVEN samples with known travel times on two arms
	gt := NewGeometryTrace(TraceConfig{Level: TraceLevelTravelTimes})
	for i, d := range []float64{10, 12, 14} {
		gt.RecordSample(SampleRecord{Time: float64(i), Arm: 2, TravelTime: d})
	}
	gt.RecordSample(SampleRecord{Time: 0, Arm: -1, TravelTime: 5})

	// WHEN summarized
	summary := Summarize(gt)

	// THEN counts, extrema, mean and spread match
	if summary.TotalSamples != 4 {
		t.Errorf("expected 4 samples, got %d", summary.TotalSamples)
	}
	if len(summary.Arms) != 2 {
		t.Fatalf("expected 2 arm summaries, got %d", len(summary.Arms))
	}
	a := summary.Arms[0]
	if a.Arm != 2 || a.Count != 3 || a.Min != 10 || a.Max != 14 || a.Mean != 12 || a.PeakToPeak != 4 {
		t.Errorf("unexpected arm 2 summary %+v", a)
	}
	if math.Abs(a.StdDev-2) > 1e-12 {
		t.Errorf("expected sample std dev 2, got %v", a.StdDev)
	}
	b := summary.Arms[1]
	if b.Arm != -1 || b.Count != 1 || b.StdDev != 0 || b.PeakToPeak != 0 {
		t.Errorf("unexpected arm -1 summary %+v", b)
	}
}

func TestSummarize_ArmOrder(t *testing.T) {
	gt := NewGeometryTrace(TraceConfig{Level: TraceLevelTravelTimes})
	for _, arm := range []int{-3, 1, -1, 3, 2, -2} {
		gt.RecordSample(SampleRecord{Arm: arm, TravelTime: 1})
	}

	summary := Summarize(gt)

	want := []int{1, 2, 3, -1, -2, -3}
	for i, s := range summary.Arms {
		if s.Arm != want[i] {
			t.Errorf("position %d: got arm %d, want %d", i, s.Arm, want[i])
		}
	}
}
