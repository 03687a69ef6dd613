package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lisasim/lisasim/sim/noise"
)

// ErrPrebufferTooShort is returned when an explicit noise prebuffer cannot
// cover three retardations of the longest arm.
var ErrPrebufferTooShort = errors.New("noise prebuffer shorter than three light times")

// Prebuffer sizing: three hops of the longest arm, with 10% margin.
const (
	prebufferHops   = 3
	prebufferMargin = 1.10
)

// NoiseConfig parameterizes the six travel-time noise processes of a
// NoisyGeometry. All six share the same parameters and differ only in seed.
type NoiseConfig struct {
	Cadence  float64 `yaml:"cadence"`  // sample spacing (s)
	Density  float64 `yaml:"density"`  // one-sided PSD (s²/Hz)
	Exponent float64 `yaml:"exponent"` // spectral exponent, 0 for white
	Window   int     `yaml:"window"`   // interpolation window, see noise.NewInterpolator

	// Prebuffer overrides the derived look-back depth; 0 derives it.
	Prebuffer float64 `yaml:"prebuffer,omitempty"`
}

// Validate checks NoiseConfig for non-physical values.
func (c NoiseConfig) Validate() error {
	if c.Prebuffer < 0 || math.IsNaN(c.Prebuffer) {
		return fmt.Errorf("noise prebuffer must be non-negative, got %v", c.Prebuffer)
	}
	return c.processConfig(0, 0).Validate()
}

func (c NoiseConfig) processConfig(prebuffer float64, seed int64) noise.Config {
	return noise.Config{
		Cadence:   c.Cadence,
		Prebuffer: prebuffer,
		Density:   c.Density,
		Exponent:  c.Exponent,
		Window:    c.Window,
		Seed:      seed,
	}
}

// NoisyGeometry decorates a Geometry with additive travel-time noise: one
// independent process per arm and propagation direction. Positions and lines
// of sight pass through unchanged. The wrapped geometry is borrowed.
type NoisyGeometry struct {
	clean     Geometry
	prebuffer float64

	outbound [3]*noise.InterpolatedNoise // positive arms, by link-1
	inbound  [3]*noise.InterpolatedNoise // negative arms, by link-1
}

// NewNoisyGeometry wraps clean with noise processes seeded from rng.
func NewNoisyGeometry(clean Geometry, cfg NoiseConfig, rng *PartitionedRNG) (*NoisyGeometry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	minimum, err := MinimumPrebuffer(clean)
	if err != nil {
		return nil, err
	}
	prebuffer := minimum
	if cfg.Prebuffer != 0 {
		if cfg.Prebuffer < minimum {
			return nil, fmt.Errorf("%w: %v < %v", ErrPrebufferTooShort, cfg.Prebuffer, minimum)
		}
		prebuffer = cfg.Prebuffer
	}

	n := &NoisyGeometry{clean: clean, prebuffer: prebuffer}
	for link := 1; link <= 3; link++ {
		up, err := noise.New(cfg.processConfig(prebuffer, rng.SeedFor(SubsystemOutbound(link))))
		if err != nil {
			return nil, fmt.Errorf("outbound noise link %d: %w", link, err)
		}
		down, err := noise.New(cfg.processConfig(prebuffer, rng.SeedFor(SubsystemInbound(link))))
		if err != nil {
			return nil, fmt.Errorf("inbound noise link %d: %w", link, err)
		}
		n.outbound[link-1] = up
		n.inbound[link-1] = down
	}
	logrus.Debugf("noisy geometry: prebuffer %.6g s, cadence %g s, density %g", prebuffer, cfg.Cadence, cfg.Density)
	return n, nil
}

// MinimumPrebuffer returns 3 × 1.10 × the longest travel time of g, taken as
// the larger of the positive-arm travel times at t=0 and, when g implements
// MaxTravelTimer, its declared maximum.
func MinimumPrebuffer(g Geometry) (float64, error) {
	longest := 0.0
	for link := 1; link <= 3; link++ {
		d, err := g.TravelTime(Arm(link), 0)
		if err != nil {
			return 0, fmt.Errorf("sizing noise prebuffer: %w", err)
		}
		longest = math.Max(longest, d)
	}
	if m, ok := g.(MaxTravelTimer); ok {
		longest = math.Max(longest, m.MaxTravelTime())
	}
	return prebufferHops * prebufferMargin * longest, nil
}

func (n *NoisyGeometry) Position(c Craft, t float64) r3.Vec {
	return n.clean.Position(c, t)
}

func (n *NoisyGeometry) LineOfSight(a Arm, t float64) (r3.Vec, error) {
	return n.clean.LineOfSight(a, t)
}

// TravelTime returns the clean travel time plus the arm's noise at t.
func (n *NoisyGeometry) TravelTime(a Arm, t float64) (float64, error) {
	d, err := n.clean.TravelTime(a, t)
	if err != nil {
		return 0, err
	}
	return d + n.Noise(a).At(t), nil
}

// Noise returns the process perturbing arm a.
func (n *NoisyGeometry) Noise(a Arm) *noise.InterpolatedNoise {
	a.MustValid()
	if a > 0 {
		return n.outbound[a.Link()-1]
	}
	return n.inbound[a.Link()-1]
}

// Prebuffer returns the look-back depth the noise processes were sized for.
func (n *NoisyGeometry) Prebuffer() float64 { return n.prebuffer }

// Clean returns the wrapped geometry.
func (n *NoisyGeometry) Clean() Geometry { return n.clean }

// SetCounter attaches a generated-samples counter to the process of arm a.
func (n *NoisyGeometry) SetCounter(a Arm, c noise.Counter) {
	n.Noise(a).SetCounter(c)
}

// Reset returns all six processes to their initial deterministic state.
func (n *NoisyGeometry) Reset() {
	for link := 0; link < 3; link++ {
		n.outbound[link].Reset()
		n.inbound[link].Reset()
	}
}
