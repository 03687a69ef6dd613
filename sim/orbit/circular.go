package orbit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lisasim/lisasim/sim"
)

// tilt is the inclination of the constellation plane to the orbital plane.
const tilt = -math.Pi / 6

// CircularConfig parameterizes a CircularRotating constellation.
// Zero ArmLength and Radius select sim.Lstd and sim.Rgc.
type CircularConfig struct {
	ArmLength float64
	Radius    float64
	Eta0      float64 // orbital phase of the guiding center at t=0
	Xi0       float64 // orientation phase of the triangle at t=0
	Mirror    bool    // exchange the roles of crafts 2 and 3
}

// CircularRotating is a rigid equilateral triangle whose centroid follows a
// circular orbit and which counter-rotates about its centroid once per
// orbit. Travel times use a fitted sinusoidal modulation; GenericTravelTime
// solves the retarded-time equation instead.
type CircularRotating struct {
	armLength float64
	radius    float64
	eta0      float64
	xi0       float64

	initp [3]r3.Vec // by craft-1, relative to the guiding center
	initn [3]r3.Vec // positive arms, by link-1

	amp   float64
	phase [3]float64 // by link-1

	// Solver backs GenericTravelTime.
	Solver *sim.Solver

	// Single-slot cache of the rotation state at cacheTime.
	cached    bool
	cacheTime float64
	rotation  *r3.Mat
	center    r3.Vec
}

// NewCircularRotating builds the rotating constellation described by cfg.
func NewCircularRotating(cfg CircularConfig) (*CircularRotating, error) {
	if cfg.ArmLength == 0 {
		cfg.ArmLength = sim.Lstd
	}
	if cfg.Radius == 0 {
		cfg.Radius = sim.Rgc
	}
	if !(cfg.ArmLength > 0) || math.IsInf(cfg.ArmLength, 0) {
		return nil, fmt.Errorf("circular orbit: arm length must be finite and positive, got %v", cfg.ArmLength)
	}
	if !(cfg.Radius > 0) || math.IsInf(cfg.Radius, 0) {
		return nil, fmt.Errorf("circular orbit: radius must be finite and positive, got %v", cfg.Radius)
	}
	if math.IsNaN(cfg.Eta0) || math.IsNaN(cfg.Xi0) {
		return nil, fmt.Errorf("circular orbit: phases must be numbers, got eta0=%v xi0=%v", cfg.Eta0, cfg.Xi0)
	}

	scriptl := cfg.ArmLength / math.Sqrt(3)
	c := &CircularRotating{
		armLength: cfg.ArmLength,
		radius:    cfg.Radius,
		eta0:      cfg.Eta0,
		xi0:       cfg.Xi0,
		Solver:    sim.NewSolver(),
	}
	for i := range c.initp {
		sn, cs := math.Sincos(2 * math.Pi * float64(i) / 3)
		c.initp[i] = r3.Vec{X: scriptl * cs, Y: -scriptl * sn}
	}

	c.amp = sim.DelayModulationConstant * c.radius * scriptl * scriptl * sim.Omega
	ph := cfg.Xi0 + sim.DelayModulationPhase
	c.phase = [3]float64{ph, ph + 4*math.Pi/3, ph + 2*math.Pi/3}

	if cfg.Mirror {
		c.initp[1], c.initp[2] = c.initp[2], c.initp[1]
		c.phase[1], c.phase[2] = c.phase[2], c.phase[1]
		c.amp = -c.amp
	}
	for link := 1; link <= 3; link++ {
		recv, emit := sim.Arm(link).Crafts()
		c.initn[link-1] = r3.Unit(r3.Sub(c.initp[recv-1], c.initp[emit-1]))
	}
	return c, nil
}

// settime refreshes the cached rotation and guiding center for time t.
func (c *CircularRotating) settime(t float64) {
	if c.cached && t == c.cacheTime {
		return
	}
	eta := sim.Omega*t + c.eta0
	c.rotation = sim.EulerRotation(tilt, eta, -sim.Omega*t+c.xi0)
	sn, cs := math.Sincos(eta)
	c.center = r3.Vec{X: c.radius * cs, Y: c.radius * sn}
	c.cacheTime = t
	c.cached = true
}

func (c *CircularRotating) Position(cr sim.Craft, t float64) r3.Vec {
	cr.MustValid()
	c.settime(t)
	return r3.Add(c.rotation.MulVec(c.initp[cr-1]), c.center)
}

// Center returns the guiding-center position at t.
func (c *CircularRotating) Center(t float64) r3.Vec {
	c.settime(t)
	return c.center
}

// TravelTime returns the fitted travel time L ± amp·sin(Omega·t - phase).
func (c *CircularRotating) TravelTime(a sim.Arm, t float64) (float64, error) {
	a.MustValid()
	mod := c.amp * math.Sin(sim.Omega*t-c.phase[a.Link()-1])
	if a > 0 {
		return c.armLength + mod, nil
	}
	return c.armLength - mod, nil
}

// GenericTravelTime solves for the travel time by bisection.
func (c *CircularRotating) GenericTravelTime(a sim.Arm, t float64) (float64, error) {
	return c.Solver.TravelTime(c, a, t, c.armLength)
}

// LineOfSight uses the retarded positions and the fitted travel time.
func (c *CircularRotating) LineOfSight(a sim.Arm, t float64) (r3.Vec, error) {
	return sim.GenericLineOfSight(c, a, t)
}

// RigidLineOfSight rotates the initial arm direction to time t, ignoring
// light propagation.
func (c *CircularRotating) RigidLineOfSight(a sim.Arm, t float64) r3.Vec {
	a.MustValid()
	c.settime(t)
	n := c.rotation.MulVec(c.initn[a.Link()-1])
	if a < 0 {
		n = r3.Scale(-1, n)
	}
	return n
}

// TravelTimeSolver returns the solver behind GenericTravelTime.
func (c *CircularRotating) TravelTimeSolver() *sim.Solver { return c.Solver }

// DelayModulation returns the signed amplitude of the fitted modulation.
func (c *CircularRotating) DelayModulation() float64 { return c.amp }

func (c *CircularRotating) ArmLength() float64 { return c.armLength }

func (c *CircularRotating) MaxTravelTime() float64 {
	return c.armLength + math.Abs(c.amp)
}
