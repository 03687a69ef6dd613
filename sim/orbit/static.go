// Package orbit implements the concrete constellation geometries: a static
// triangle, its rotation-corrected variant, a rigid triangle rotating on a
// circular orbit, and a second-order eccentric orbit approximation.
//
// Every variant satisfies sim.Geometry. None is safe for concurrent use.
package orbit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lisasim/lisasim/sim"
)

// StaticTriangle is a non-rotating constellation with fixed arm lengths.
type StaticTriangle struct {
	lengths [3]float64 // by link-1
	pos     [3]r3.Vec  // by craft-1
	los     [3]r3.Vec  // positive arms, by link-1
}

// NewStaticTriangle places three crafts so that link i has length li and the
// centroid is at the origin. Lengths must be positive and satisfy the
// triangle inequality.
func NewStaticTriangle(l1, l2, l3 float64) (*StaticTriangle, error) {
	lengths := [3]float64{l1, l2, l3}
	pos, err := placeTriangle(lengths)
	if err != nil {
		return nil, err
	}
	s := &StaticTriangle{lengths: lengths, pos: pos}
	for link := 1; link <= 3; link++ {
		recv, emit := sim.Arm(link).Crafts()
		s.los[link-1] = r3.Unit(r3.Sub(pos[recv-1], pos[emit-1]))
	}
	return s, nil
}

// placeTriangle solves the law of cosines for the craft positions.
// Link 1 joins crafts 2 and 3, link 2 joins 3 and 1, link 3 joins 1 and 2.
// Crafts 2 and 3 sit on a line parallel to y with craft 1 on +x, which for
// equal arms reproduces the initial layout of CircularRotating.
func placeTriangle(l [3]float64) ([3]r3.Vec, error) {
	for i, v := range l {
		if !(v > 0) || math.IsInf(v, 0) {
			return [3]r3.Vec{}, fmt.Errorf("arm length %d must be finite and positive, got %v", i+1, v)
		}
	}
	l1, l2, l3 := l[0], l[1], l[2]
	y1 := (l3*l3 - l2*l2) / (2 * l1)
	h := l3*l3 - (y1+0.5*l1)*(y1+0.5*l1)
	if h < 0 {
		return [3]r3.Vec{}, fmt.Errorf("arm lengths %v, %v, %v violate the triangle inequality", l1, l2, l3)
	}
	p := [3]r3.Vec{
		{X: math.Sqrt(h), Y: y1},
		{X: 0, Y: -0.5 * l1},
		{X: 0, Y: 0.5 * l1},
	}
	centroid := r3.Scale(1.0/3.0, r3.Add(r3.Add(p[0], p[1]), p[2]))
	for i := range p {
		p[i] = r3.Sub(p[i], centroid)
	}
	return p, nil
}

func (s *StaticTriangle) Position(c sim.Craft, t float64) r3.Vec {
	c.MustValid()
	return s.pos[c-1]
}

// LineOfSight returns the fixed unit vector from emitter to receiver.
func (s *StaticTriangle) LineOfSight(a sim.Arm, t float64) (r3.Vec, error) {
	a.MustValid()
	n := s.los[a.Link()-1]
	if a < 0 {
		n = r3.Scale(-1, n)
	}
	return n, nil
}

// TravelTime returns the construction-time length of the arm's link in
// either direction.
func (s *StaticTriangle) TravelTime(a sim.Arm, t float64) (float64, error) {
	a.MustValid()
	return s.lengths[a.Link()-1], nil
}

// ArmLength returns the length of the link of arm a.
func (s *StaticTriangle) ArmLength(a sim.Arm) float64 {
	a.MustValid()
	return s.lengths[a.Link()-1]
}

func (s *StaticTriangle) MaxTravelTime() float64 {
	return math.Max(s.lengths[0], math.Max(s.lengths[1], s.lengths[2]))
}
