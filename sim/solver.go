package sim

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrNoConvergence is returned when the bisection does not reach its
	// tolerance within MaxIterations.
	ErrNoConvergence = errors.New("travel-time solver did not converge")

	// ErrNotBracketed is returned when the null interval does not change sign
	// across the initial bracket, i.e. the true delay lies outside it.
	ErrNotBracketed = errors.New("travel-time solver bracket does not contain the root")
)

// Solver defaults.
const (
	DefaultSolverTolerance       = 1e-6
	DefaultSolverBracketFraction = 0.10
	DefaultSolverMaxIterations   = 200
)

// Observer receives one float sample per call. prometheus.Histogram and
// prometheus.Summary satisfy it.
type Observer interface {
	Observe(float64)
}

// Solver finds retarded light travel times by bisection on the flat-spacetime
// interval between emission and reception events.
// The zero value is not usable; construct with NewSolver.
type Solver struct {
	Tolerance       float64 // stop when successive midpoints differ by less
	BracketFraction float64 // bracket is guess·(1 ± BracketFraction)
	MaxIterations   int

	// Iterations, when set, observes the iteration count of every solve.
	Iterations Observer
}

// NewSolver returns a Solver with the default tolerance, bracket and
// iteration bound.
func NewSolver() *Solver {
	return &Solver{
		Tolerance:       DefaultSolverTolerance,
		BracketFraction: DefaultSolverBracketFraction,
		MaxIterations:   DefaultSolverMaxIterations,
	}
}

// interval returns |p_recv(t) - p_emit(t-d)|² - d². Non-negative values are
// spacelike: the delay guess is too short.
func interval(p Positioner, recv r3.Vec, emitter Craft, t, d float64) float64 {
	diff := r3.Sub(recv, p.Position(emitter, t-d))
	return r3.Dot(diff, diff) - d*d
}

// TravelTime solves for the delay d of arm a at reception time t, starting
// from guess.
func (s *Solver) TravelTime(p Positioner, a Arm, t, guess float64) (float64, error) {
	receiver, emitter := a.Crafts()
	if guess <= 0 || math.IsNaN(guess) || math.IsInf(guess, 0) {
		return 0, fmt.Errorf("travel time arm %d: initial guess must be finite and positive, got %v", a, guess)
	}
	recv := p.Position(receiver, t)

	lo := (1 - s.BracketFraction) * guess
	hi := (1 + s.BracketFraction) * guess
	if interval(p, recv, emitter, t, lo) < 0 || interval(p, recv, emitter, t, hi) >= 0 {
		return 0, fmt.Errorf("travel time arm %d at t=%g: %w [%g, %g]", a, t, ErrNotBracketed, lo, hi)
	}

	next := guess
	for i := 1; i <= s.MaxIterations; i++ {
		cur := next
		if interval(p, recv, emitter, t, cur) >= 0 {
			lo = cur
		} else {
			hi = cur
		}
		next = 0.5 * (lo + hi)
		if math.Abs(next-cur) < s.Tolerance {
			if s.Iterations != nil {
				s.Iterations.Observe(float64(i))
			}
			return next, nil
		}
	}
	if s.Iterations != nil {
		s.Iterations.Observe(float64(s.MaxIterations))
	}
	return 0, fmt.Errorf("travel time arm %d at t=%g: %w after %d iterations", a, t, ErrNoConvergence, s.MaxIterations)
}

// GenericLineOfSight returns the normalized vector from the emitter at the
// retarded time to the receiver at t, using g's own positions and travel
// times.
func GenericLineOfSight(g Geometry, a Arm, t float64) (r3.Vec, error) {
	receiver, emitter := a.Crafts()
	d, err := g.TravelTime(a, t)
	if err != nil {
		return r3.Vec{}, fmt.Errorf("line of sight arm %d: %w", a, err)
	}
	n := r3.Sub(g.Position(receiver, t), g.Position(emitter, t-d))
	return r3.Unit(n), nil
}
