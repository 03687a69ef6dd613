// Package testutil provides shared test infrastructure for the constellation
// packages: the golden geometry dataset and float/vector assertion helpers
// used across sim/ and sim/orbit/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// GoldenDataset represents the structure of testdata/golden_geometry.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one rigid rotating constellation evaluated at a list of
// times.
type GoldenTestCase struct {
	Name      string         `json:"name"`
	ArmLength float64        `json:"arm_length"`
	Eta0      float64        `json:"eta0"`
	Xi0       float64        `json:"xi0"`
	Mirror    bool           `json:"mirror"`
	Samples   []GoldenSample `json:"samples"`
}

// GoldenSample holds the expected state at one time.
type GoldenSample struct {
	Time float64 `json:"time"`

	// Positions of crafts 1..3.
	Positions [3][3]float64 `json:"positions"`

	// Fitted travel times of arms 1, 2, 3, -1, -2, -3.
	TravelTimes [6]float64 `json:"travel_times"`
}

// goldenPath locates testdata/golden_geometry.json at the repository root,
// three directories above this file.
func goldenPath(t *testing.T) string {
	t.Helper()
	_, here, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate testutil source file")
	}
	return filepath.Join(filepath.Dir(here), "..", "..", "..", "testdata", "golden_geometry.json")
}

// LoadGoldenDataset reads the golden geometry dataset, failing the test when
// it is missing or malformed.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()
	path := goldenPath(t)
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading golden geometry %s: %v", path, err)
	}
	ds := new(GoldenDataset)
	if err := json.Unmarshal(raw, ds); err != nil {
		t.Fatalf("decoding golden geometry %s: %v", path, err)
	}
	if len(ds.Tests) == 0 {
		t.Fatalf("golden geometry %s has no cases", path)
	}
	return ds
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	scale := math.Max(math.Abs(want), math.Abs(got))
	if scale == 0 {
		return
	}
	if rel := math.Abs(want-got) / scale; rel > relTol || math.IsNaN(rel) {
		t.Errorf("%s: got %v, want %v (rel diff %v > %v)", name, got, want, rel, relTol)
	}
}

// AssertVecNear compares two vectors component-wise with absolute tolerance.
func AssertVecNear(t *testing.T, name string, want, got r3.Vec, absTol float64) {
	t.Helper()
	if d := r3.Norm(r3.Sub(want, got)); d > absTol || math.IsNaN(d) {
		t.Errorf("%s: got %v, want %v (|diff|=%v)", name, got, want, d)
	}
}

// AssertUnit checks that v has unit norm within absTol.
func AssertUnit(t *testing.T, name string, v r3.Vec, absTol float64) {
	t.Helper()
	if n := r3.Norm(v); math.Abs(n-1) > absTol || math.IsNaN(n) {
		t.Errorf("%s: |v| = %v, want 1", name, n)
	}
}
