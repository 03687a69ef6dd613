package orbit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lisasim/lisasim/sim"
)

// EccentricConfig parameterizes an EccentricOrbit.
// Zero ArmLength and Radius select sim.Lstd and sim.Rgc.
type EccentricConfig struct {
	ArmLength float64
	Radius    float64
	Kappa     float64 // initial azimuth of the guiding center
	Lambda    float64 // initial orientation of the crafts
}

type positionCache struct {
	valid bool
	t     float64
	p     r3.Vec
}

// EccentricOrbit places each craft on its own Keplerian orbit of
// eccentricity L/(2√3·R), expanded to second order. The arms flex slowly
// around L; travel times and lines of sight come from the generic solver.
type EccentricOrbit struct {
	armLength float64
	radius    float64
	ecc       float64
	kappa     float64
	lambda    float64

	// Solver backs TravelTime.
	Solver *sim.Solver

	cache [3]positionCache
}

// NewEccentricOrbit builds the eccentric constellation described by cfg.
func NewEccentricOrbit(cfg EccentricConfig) (*EccentricOrbit, error) {
	if cfg.ArmLength == 0 {
		cfg.ArmLength = sim.Lstd
	}
	if cfg.Radius == 0 {
		cfg.Radius = sim.Rgc
	}
	if !(cfg.ArmLength > 0) || math.IsInf(cfg.ArmLength, 0) {
		return nil, fmt.Errorf("eccentric orbit: arm length must be finite and positive, got %v", cfg.ArmLength)
	}
	if !(cfg.Radius > 0) || math.IsInf(cfg.Radius, 0) {
		return nil, fmt.Errorf("eccentric orbit: radius must be finite and positive, got %v", cfg.Radius)
	}
	if cfg.ArmLength >= cfg.Radius {
		return nil, fmt.Errorf("eccentric orbit: arm length %v must be much smaller than radius %v", cfg.ArmLength, cfg.Radius)
	}
	return &EccentricOrbit{
		armLength: cfg.ArmLength,
		radius:    cfg.Radius,
		ecc:       cfg.ArmLength / (2 * math.Sqrt(3) * cfg.Radius),
		kappa:     cfg.Kappa,
		lambda:    cfg.Lambda,
		Solver:    sim.NewSolver(),
	}, nil
}

func (e *EccentricOrbit) Position(c sim.Craft, t float64) r3.Vec {
	c.MustValid()
	pc := &e.cache[c-1]
	if !pc.valid || pc.t != t {
		pc.p = e.position(c, t)
		pc.t = t
		pc.valid = true
	}
	return pc.p
}

func (e *EccentricOrbit) position(c sim.Craft, t float64) r3.Vec {
	r, ec := e.radius, e.ecc
	alpha := sim.Omega*t + e.kappa
	beta := 2*math.Pi*float64(c-1)/3 + e.lambda

	sa, ca := math.Sincos(alpha)
	sb, cb := math.Sincos(beta)
	s2ab, c2ab := math.Sincos(2*alpha - beta)
	s3a2b, c3a2b := math.Sincos(3*alpha - 2*beta)
	sa2b, ca2b := math.Sincos(alpha - 2*beta)
	sab, cab := math.Sincos(alpha - beta)

	return r3.Vec{
		X: 0.5*r*ec*(c2ab-3*cb) +
			0.125*r*ec*ec*(3*c3a2b-5*(2*ca+ca2b)) +
			r*ca,
		Y: 0.5*r*ec*(s2ab-3*sb) +
			0.125*r*ec*ec*(3*s3a2b-5*(2*sa-sa2b)) +
			r*sa,
		Z: -math.Sqrt(3)*r*ec*cab +
			math.Sqrt(3)*r*ec*ec*(cab*cab+2*sab*sab),
	}
}

// TravelTime solves the retarded-time equation with guess L.
func (e *EccentricOrbit) TravelTime(a sim.Arm, t float64) (float64, error) {
	return e.Solver.TravelTime(e, a, t, e.armLength)
}

func (e *EccentricOrbit) LineOfSight(a sim.Arm, t float64) (r3.Vec, error) {
	return sim.GenericLineOfSight(e, a, t)
}

// TravelTimeSolver returns the solver behind TravelTime.
func (e *EccentricOrbit) TravelTimeSolver() *sim.Solver { return e.Solver }

// Eccentricity returns the orbital eccentricity of each craft.
func (e *EccentricOrbit) Eccentricity() float64 { return e.ecc }

// MaxTravelTime bounds the flexing arms by L·(1+ecc).
func (e *EccentricOrbit) MaxTravelTime() float64 {
	return e.armLength * (1 + e.ecc)
}
