package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Craft identifies one of the three bodies of the constellation (1, 2 or 3).
type Craft int

// Valid reports whether c is one of 1, 2, 3.
func (c Craft) Valid() bool {
	return c >= 1 && c <= 3
}

// MustValid panics on an out-of-range craft index. Geometry variants call it
// at their entry points: an invalid index is a caller bug, not a runtime
// condition.
func (c Craft) MustValid() {
	if !c.Valid() {
		panic(fmt.Sprintf("sim: invalid craft index %d; valid: 1, 2, 3", int(c)))
	}
}

// Arm is a signed link index. |Arm| selects the link (1..3); the sign selects
// the propagation direction along it.
type Arm int

// Valid reports whether a is one of ±1, ±2, ±3.
func (a Arm) Valid() bool {
	return a != 0 && a >= -3 && a <= 3
}

// Link returns the unsigned link index in 1..3.
func (a Arm) Link() int {
	if a < 0 {
		return int(-a)
	}
	return int(a)
}

// Reverse returns the arm for the opposite propagation direction.
func (a Arm) Reverse() Arm {
	return -a
}

// Crafts returns the receiving and emitting craft for the arm. For link i the
// receiver is craft i+1 and the emitter craft i+2 (cyclically in 1..3); the
// pair is swapped for negative arms. Positions satisfy
// p_recv(t) = p_emit(t - L) + L*n, so arm 3 carries light from 2 to 1.
//
// Panics on an invalid arm.
func (a Arm) Crafts() (receiver, emitter Craft) {
	a.MustValid()
	link := a.Link()
	receiver = Craft(link%3 + 1)
	emitter = Craft((link+1)%3 + 1)
	if a < 0 {
		receiver, emitter = emitter, receiver
	}
	return receiver, emitter
}

// MustValid panics on an out-of-range arm index.
func (a Arm) MustValid() {
	if !a.Valid() {
		panic(fmt.Sprintf("sim: invalid arm index %d; valid: ±1, ±2, ±3", int(a)))
	}
}

// AllArms lists the six directed arms in a stable order.
var AllArms = []Arm{1, 2, 3, -1, -2, -3}

// Positioner returns the position of a craft at time t.
type Positioner interface {
	Position(c Craft, t float64) r3.Vec
}

// Geometry is the capability set of a constellation model.
// Times and lengths share one unit system with light speed normalized to 1.
// Implementations are not safe for concurrent use: the rotating variants keep
// a single-slot cache keyed on the last query time.
type Geometry interface {
	Positioner

	// LineOfSight returns the unit vector from the emitter (at the retarded
	// time) to the receiver (at t).
	LineOfSight(a Arm, t float64) (r3.Vec, error)

	// TravelTime returns the light travel time along a for light received
	// at time t.
	TravelTime(a Arm, t float64) (float64, error)
}

// MaxTravelTimer is implemented by geometries that can bound their own travel
// times over the whole run. The noise decorator uses it to size its buffers.
type MaxTravelTimer interface {
	MaxTravelTime() float64
}

// SolverUser is implemented by geometries that solve travel times by
// bisection.
type SolverUser interface {
	TravelTimeSolver() *Solver
}

// PositionArray returns the position of c as a plain array.
func PositionArray(g Positioner, c Craft, t float64) [3]float64 {
	p := g.Position(c, t)
	return [3]float64{p.X, p.Y, p.Z}
}

// LineOfSightArray returns the line-of-sight vector of a as a plain array.
func LineOfSightArray(g Geometry, a Arm, t float64) ([3]float64, error) {
	n, err := g.LineOfSight(a, t)
	if err != nil {
		return [3]float64{}, err
	}
	return [3]float64{n.X, n.Y, n.Z}, nil
}

// EulerRotation returns the active rotation Rz(phi)·Rx(theta)·Rz(psi):
// a rotation by psi about z, a tilt by theta about x, then a rotation by phi
// about z.
func EulerRotation(theta, phi, psi float64) *r3.Mat {
	st, ct := math.Sincos(theta)
	sp, cp := math.Sincos(phi)
	ss, cs := math.Sincos(psi)
	return r3.NewMat([]float64{
		cp*cs - sp*ct*ss, -cp*ss - sp*ct*cs, sp * st,
		sp*cs + cp*ct*ss, -sp*ss + cp*ct*cs, -cp * st,
		st * ss, st * cs, ct,
	})
}
