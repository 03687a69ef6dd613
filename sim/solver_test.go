package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// drifting moves craft 1 along +y at speed v; crafts 2 and 3 are fixed.
type drifting struct {
	v float64
}

func (d drifting) Position(c Craft, t float64) r3.Vec {
	switch c {
	case 1:
		return r3.Vec{Y: d.v * t}
	case 2:
		return r3.Vec{X: 10}
	default:
		return r3.Vec{X: 10, Y: 10}
	}
}

type recordingObserver struct{ got []float64 }

func (r *recordingObserver) Observe(v float64) { r.got = append(r.got, v) }

func TestSolver_StaticRootWithinTolerance(t *testing.T) {
	g := newRightTriangle()
	s := NewSolver()
	for _, a := range AllArms {
		want, _ := g.TravelTime(a, 0)
		got, err := s.TravelTime(g, a, 0, want*0.97)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-6, "arm %d", a)
	}
}

func TestSolver_MovingEmitter_ClosedForm(t *testing.T) {
	// GIVEN craft 1 (the emitter of arm 2) receding from craft 3's line at
	// speed v, with craft 3 at (10, 10) receiving at t = 0
	const v = 0.01
	g := drifting{v: v}
	s := NewSolver()
	s.Tolerance = 1e-12

	// WHEN solving |p3 - p1(-d)| = d, i.e. 100 + (10 + v·d)² = d²
	got, err := s.TravelTime(g, 2, 0, 10*math.Sqrt2)
	require.NoError(t, err)

	// THEN the root matches the quadratic (1 - v²)d² - 20v·d - 200 = 0
	a, b, c := 1-v*v, -20*v, -200.0
	want := (-b + math.Sqrt(b*b-4*a*c)) / (2 * a)
	assert.InDelta(t, want, got, 1e-10)
}

func TestSolver_NotBracketed(t *testing.T) {
	g := newRightTriangle()
	s := NewSolver()

	// A guess 50% too long puts the root below the bracket.
	_, err := s.TravelTime(g, 1, 0, 4.5)
	assert.True(t, errors.Is(err, ErrNotBracketed), "got %v", err)
}

func TestSolver_BoundedIterations(t *testing.T) {
	obs := &recordingObserver{}
	s := NewSolver()
	s.MaxIterations = 3
	s.Iterations = obs

	_, err := s.TravelTime(newRightTriangle(), 3, 0, 5.1)
	assert.True(t, errors.Is(err, ErrNoConvergence), "got %v", err)
	assert.Equal(t, []float64{3}, obs.got)
}

func TestSolver_ObservesIterationCount(t *testing.T) {
	obs := &recordingObserver{}
	s := NewSolver()
	s.Iterations = obs

	_, err := s.TravelTime(newRightTriangle(), -2, 0, 4)
	require.NoError(t, err)
	require.Len(t, obs.got, 1)
	// log2(0.8 / 1e-6) ≈ 20 halvings
	assert.InDelta(t, 20, obs.got[0], 2)
}

func TestSolver_InvalidGuess(t *testing.T) {
	s := NewSolver()
	for _, guess := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := s.TravelTime(newRightTriangle(), 1, 0, guess)
		assert.Error(t, err, "guess %v", guess)
	}
}

func TestGenericLineOfSight_UnitAndDirected(t *testing.T) {
	g := newRightTriangle()
	for _, a := range AllArms {
		n, err := GenericLineOfSight(g, a, 0)
		require.NoError(t, err)
		assert.InDelta(t, 1, r3.Norm(n), 1e-15)

		rev, err := GenericLineOfSight(g, a.Reverse(), 0)
		require.NoError(t, err)
		assert.InDelta(t, -1, r3.Dot(n, rev), 1e-15)
	}
}
