package orbit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lisasim/lisasim/sim"
	"github.com/lisasim/lisasim/sim/internal/testutil"
)

var triangleCases = []struct {
	name       string
	l1, l2, l3 float64
}{
	{"equilateral", sim.Lstd, sim.Lstd, sim.Lstd},
	{"nearly equal", 16.5, 16.7, 16.9},
	{"scalene", 10, 12, 15},
	{"right", 3, 4, 5},
}

func TestStaticTriangle_CentroidAtOrigin_UnitLineOfSight(t *testing.T) {
	for _, tc := range triangleCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewStaticTriangle(tc.l1, tc.l2, tc.l3)
			require.NoError(t, err)

			sum := r3.Add(r3.Add(s.Position(1, 0), s.Position(2, 0)), s.Position(3, 0))
			testutil.AssertVecNear(t, "position sum", r3.Vec{}, sum, 1e-12)

			for _, a := range sim.AllArms {
				n, err := s.LineOfSight(a, 0)
				require.NoError(t, err)
				testutil.AssertUnit(t, "line of sight", n, 1e-14)
			}
		})
	}
}

func TestStaticTriangle_ArmsHaveRequestedLengths(t *testing.T) {
	for _, tc := range triangleCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewStaticTriangle(tc.l1, tc.l2, tc.l3)
			require.NoError(t, err)

			want := []float64{tc.l1, tc.l2, tc.l3}
			for link := 1; link <= 3; link++ {
				recv, emit := sim.Arm(link).Crafts()
				got := r3.Norm(r3.Sub(s.Position(recv, 0), s.Position(emit, 0)))
				assert.InDelta(t, want[link-1], got, 1e-12, "link %d", link)
			}
		})
	}
}

func TestStaticTriangle_TravelTimeConstantForAllTimes(t *testing.T) {
	s, err := NewStaticTriangle(10, 12, 15)
	require.NoError(t, err)
	want := map[int]float64{1: 10, 2: 12, 3: 15}

	for _, tm := range []float64{-1e7, -2.5, 0, 0.125, 3.7, 1e9} {
		for _, a := range sim.AllArms {
			got, err := s.TravelTime(a, tm)
			require.NoError(t, err)
			assert.Equal(t, want[a.Link()], got, "arm %d t=%v", a, tm)
		}
	}
}

func TestStaticTriangle_LineOfSightPointsFromEmitterToReceiver(t *testing.T) {
	s, err := NewStaticTriangle(10, 12, 15)
	require.NoError(t, err)

	for _, a := range sim.AllArms {
		n, err := s.LineOfSight(a, 0)
		require.NoError(t, err)
		recv, emit := a.Crafts()
		l, _ := s.TravelTime(a, 0)
		// p_recv = p_emit + L·n
		testutil.AssertVecNear(t, "p_recv", s.Position(recv, 0), r3.Add(s.Position(emit, 0), r3.Scale(l, n)), 1e-12)

		rev, err := s.LineOfSight(a.Reverse(), 0)
		require.NoError(t, err)
		testutil.AssertVecNear(t, "reverse", r3.Scale(-1, n), rev, 0)
	}
}

func TestStaticTriangle_EquilateralMatchesRotatingLayout(t *testing.T) {
	s, err := NewStaticTriangle(sim.Lstd, sim.Lstd, sim.Lstd)
	require.NoError(t, err)

	scriptl := sim.Lstd / math.Sqrt(3)
	testutil.AssertVecNear(t, "craft 1", r3.Vec{X: scriptl}, s.Position(1, 0), 1e-12)
	testutil.AssertVecNear(t, "craft 2", r3.Vec{X: -0.5 * scriptl, Y: -math.Sqrt(3) / 2 * scriptl}, s.Position(2, 0), 1e-12)
	testutil.AssertVecNear(t, "craft 3", r3.Vec{X: -0.5 * scriptl, Y: math.Sqrt(3) / 2 * scriptl}, s.Position(3, 0), 1e-12)
}

func TestNewStaticTriangle_InvalidLengths(t *testing.T) {
	tests := []struct {
		name       string
		l1, l2, l3 float64
	}{
		{"triangle inequality", 1, 2, 10},
		{"zero", 0, 1, 1},
		{"negative", 5, -5, 5},
		{"NaN", math.NaN(), 1, 1},
		{"Inf", math.Inf(1), 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStaticTriangle(tt.l1, tt.l2, tt.l3)
			assert.Error(t, err)
		})
	}
}

func TestStaticTriangle_InvalidIndex_Panics(t *testing.T) {
	s, err := NewStaticTriangle(1, 1, 1)
	require.NoError(t, err)

	assert.PanicsWithValue(t, "sim: invalid craft index 4; valid: 1, 2, 3", func() { s.Position(4, 0) })
	assert.PanicsWithValue(t, "sim: invalid arm index 0; valid: ±1, ±2, ±3", func() { _, _ = s.TravelTime(0, 0) })
	assert.Panics(t, func() { _, _ = s.LineOfSight(-4, 0) })
}

func TestGenericSolver_MatchesStaticClosedForm(t *testing.T) {
	// GIVEN the static triangle and the generic bisection solver
	for _, tc := range triangleCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewStaticTriangle(tc.l1, tc.l2, tc.l3)
			require.NoError(t, err)
			solver := sim.NewSolver()

			for _, a := range sim.AllArms {
				want, _ := s.TravelTime(a, 42)
				// WHEN solving from a guess 5% off
				got, err := solver.TravelTime(s, a, 42, 1.05*want)
				require.NoError(t, err)
				// THEN the root agrees to the solver tolerance
				assert.InDelta(t, want, got, 1e-6, "arm %d", a)
			}
		})
	}
}

func TestGenericLineOfSight_MatchesStaticClosedForm(t *testing.T) {
	s, err := NewStaticTriangle(10, 12, 15)
	require.NoError(t, err)

	for _, a := range sim.AllArms {
		want, _ := s.LineOfSight(a, 0)
		got, err := sim.GenericLineOfSight(s, a, 0)
		require.NoError(t, err)
		testutil.AssertVecNear(t, "line of sight", want, got, 1e-14)
	}
}
