package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lisasim/lisasim/sim"
)

// SagnacTriangle is a StaticTriangle spinning rigidly in the xy plane at
// sim.Omega, with a fixed direction-dependent travel-time correction per arm.
type SagnacTriangle struct {
	static *StaticTriangle
	omega  float64
	sagnac [3]float64 // by link-1
}

// NewSagnacTriangle builds the rotating triangle with link lengths l1..l3.
func NewSagnacTriangle(l1, l2, l3 float64) (*SagnacTriangle, error) {
	st, err := NewStaticTriangle(l1, l2, l3)
	if err != nil {
		return nil, err
	}
	s := &SagnacTriangle{static: st, omega: sim.Omega}
	for link := 1; link <= 3; link++ {
		recv, emit := sim.Arm(link).Crafts()
		la := r3.Norm(st.pos[recv-1])
		lb := r3.Norm(st.pos[emit-1])
		l := st.lengths[link-1]
		// La·Lb·sin of the angle the link subtends at the centroid.
		cos := (la*la + lb*lb - l*l) / (2 * la * lb)
		s.sagnac[link-1] = la * lb * math.Sqrt(math.Max(0, 1-cos*cos)) * s.omega
	}
	return s, nil
}

// Position rotates the static position by Omega·t about z.
func (s *SagnacTriangle) Position(c sim.Craft, t float64) r3.Vec {
	p := s.static.Position(c, t)
	sn, cs := math.Sincos(s.omega * t)
	return r3.Vec{
		X: cs*p.X - sn*p.Y,
		Y: sn*p.X + cs*p.Y,
		Z: p.Z,
	}
}

func (s *SagnacTriangle) LineOfSight(a sim.Arm, t float64) (r3.Vec, error) {
	return sim.GenericLineOfSight(s, a, t)
}

// TravelTime returns L + sagnac for positive arms and L - sagnac for
// negative ones.
func (s *SagnacTriangle) TravelTime(a sim.Arm, t float64) (float64, error) {
	a.MustValid()
	link := a.Link() - 1
	if a > 0 {
		return s.static.lengths[link] + s.sagnac[link], nil
	}
	return s.static.lengths[link] - s.sagnac[link], nil
}

// Sagnac returns the correction applied to the link of arm a.
func (s *SagnacTriangle) Sagnac(a sim.Arm) float64 {
	a.MustValid()
	return s.sagnac[a.Link()-1]
}

func (s *SagnacTriangle) MaxTravelTime() float64 {
	m := 0.0
	for i := range s.sagnac {
		m = math.Max(m, s.static.lengths[i]+s.sagnac[i])
	}
	return m
}
