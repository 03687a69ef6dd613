package noise

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidWindow is returned for unsupported interpolation windows and
	// for window overrides wider than the provisioned buffer.
	ErrInvalidWindow = errors.New("invalid interpolation window")

	// ErrInvalidConfig is returned for non-physical noise parameters.
	ErrInvalidConfig = errors.New("invalid noise configuration")
)

// Config holds the construction parameters of an InterpolatedNoise.
type Config struct {
	Cadence   float64 // time between discrete samples
	Prebuffer float64 // how far before the newest query older queries may reach
	Density   float64 // one-sided power spectral density (at 1 Hz for colored noise)
	Exponent  float64 // spectral exponent: 0 white, <0 red, >0 blue
	Window    int     // interpolation window, see NewInterpolator
	Seed      int64   // white-noise seed; ignored for sampled input
}

// Validate checks Config for non-physical values.
func (c Config) Validate() error {
	if !(c.Cadence > 0) || math.IsInf(c.Cadence, 0) {
		return fmt.Errorf("%w: cadence must be finite and positive, got %v", ErrInvalidConfig, c.Cadence)
	}
	if c.Prebuffer < 0 || math.IsNaN(c.Prebuffer) || math.IsInf(c.Prebuffer, 0) {
		return fmt.Errorf("%w: prebuffer must be finite and non-negative, got %v", ErrInvalidConfig, c.Prebuffer)
	}
	if c.Density < 0 || math.IsNaN(c.Density) || math.IsInf(c.Density, 0) {
		return fmt.Errorf("%w: density must be finite and non-negative, got %v", ErrInvalidConfig, c.Density)
	}
	if math.IsNaN(c.Exponent) || math.IsInf(c.Exponent, 0) {
		return fmt.Errorf("%w: exponent must be finite, got %v", ErrInvalidConfig, c.Exponent)
	}
	if _, err := NewInterpolator(c.Window); err != nil {
		return err
	}
	return nil
}

// InterpolatedNoise is a continuous-time noise process built from a
// fixed-cadence discrete sequence. Query time t maps to the fractional index
// t/Cadence shifted by an offset that keeps every index reachable from
// t >= -Prebuffer non-negative.
type InterpolatedNoise struct {
	cadence   float64
	prebuffer float64
	offset    int64
	span      int // interpolation span the buffer was provisioned for

	normalize float64

	cache  *Cache
	interp Interpolator
}

// New creates a pseudorandom InterpolatedNoise: white deviates seeded with
// cfg.Seed, shaped by the filter selected from cfg.Exponent, and scaled so
// that the process has power spectral density cfg.Density·f^cfg.Exponent.
func New(cfg Config) (*InterpolatedNoise, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := newInterpolated(cfg, NewWhiteSource(cfg.Seed), NewFilterForExponent(cfg.Exponent))
	n.normalize = whiteNormalization(cfg.Density, cfg.Exponent, cfg.Cadence)
	return n, nil
}

// NewSampled creates an InterpolatedNoise that replays data (borrowed, not
// copied) through the filter selected from cfg.Exponent. Samples are scaled
// by sqrt(cfg.Density). Queries needing indices past len(data) panic.
func NewSampled(data []float64, cfg Config) (*InterpolatedNoise, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := newInterpolated(cfg, NewSampledSource(data), NewFilterForExponent(cfg.Exponent))
	n.normalize = math.Sqrt(cfg.Density)
	return n, nil
}

func newInterpolated(cfg Config, source Source, filter Filter) *InterpolatedNoise {
	// Validated by the caller.
	interp, _ := NewInterpolator(cfg.Window)
	span := interp.Span()
	depth := int64(math.Ceil(cfg.Prebuffer / cfg.Cadence))
	return &InterpolatedNoise{
		cadence:   cfg.Cadence,
		prebuffer: cfg.Prebuffer,
		offset:    depth + int64(span),
		span:      span,
		cache:     NewCache(source, filter, int(depth)+2*span+2),
		interp:    interp,
	}
}

// whiteNormalization returns the factor applied to unit-variance deviates so
// that the filtered sequence has one-sided PSD density·f^exponent.
// The integrator and differencer realize f^-2 and f^2 exactly; other
// exponents get the nearest of the two.
func whiteNormalization(density, exponent, cadence float64) float64 {
	nyquist := 0.5 / cadence
	white := math.Sqrt(density * nyquist)
	if exponent != 0 && exponent != 2 && exponent != -2 {
		logrus.Warnf("noise: spectral exponent %g is not realizable; shaping as f^%+d", exponent, int(2*math.Copysign(1, exponent)))
	}
	switch {
	case exponent == 0:
		return white
	case exponent < 0:
		return white * 2 * math.Pi * cadence
	default:
		return white / (2 * math.Pi * cadence)
	}
}

// Cadence returns the discrete sample spacing.
func (n *InterpolatedNoise) Cadence() float64 { return n.cadence }

// Prebuffer returns the provisioned look-back depth.
func (n *InterpolatedNoise) Prebuffer() float64 { return n.prebuffer }

// Normalization returns the scale applied to filtered samples.
func (n *InterpolatedNoise) Normalization() float64 { return n.normalize }

// Cache exposes the underlying discrete cache.
func (n *InterpolatedNoise) Cache() *Cache { return n.cache }

// SetCounter attaches a generation counter to the underlying cache.
func (n *InterpolatedNoise) SetCounter(c Counter) { n.cache.SetCounter(c) }

// At returns the noise value at time t.
func (n *InterpolatedNoise) At(t float64) float64 {
	ct := t / n.cadence
	it := math.Floor(ct)
	return n.normalize * n.interp.Reconstruct(n.cache, int64(it)+n.offset, ct-it)
}

// AtCorrected returns the noise value at base+corr.
func (n *InterpolatedNoise) AtCorrected(base, corr float64) float64 {
	return n.At(base + corr)
}

// SetWindow swaps the interpolator. Windows reading further than the span
// the buffer was sized for are rejected.
func (n *InterpolatedNoise) SetWindow(window int) error {
	interp, err := NewInterpolator(window)
	if err != nil {
		return err
	}
	if interp.Span() > n.span {
		return fmt.Errorf("%w: window %d needs %d samples per side, buffer provisioned for %d",
			ErrInvalidWindow, window, interp.Span(), n.span)
	}
	n.interp = interp
	return nil
}

// Reset restarts the process from its initial deterministic state.
func (n *InterpolatedNoise) Reset() {
	n.cache.Reset()
}
