package noise

// Filter computes the filtered sample at pos from raw samples x and earlier
// filtered samples y. Implementations must be causal: they may read x and y
// only at indices <= pos. Filter memory must fit within the ring capacity;
// this is not checked.
type Filter interface {
	Apply(x, y *Buffer, pos int64)
}

// DefaultIntegratorAlpha is the leak factor of NewIntegrator.
const DefaultIntegratorAlpha = 0.9999

// Identity passes raw samples through.
type Identity struct{}

func (Identity) Apply(x, y *Buffer, pos int64) {
	y.Set(pos, x.At(pos))
}

// Integrator is a one-pole leaky integrator, y[i] = Alpha*y[i-1] + x[i].
// With Alpha close to 1 it turns white input into red (f^-2) noise.
type Integrator struct {
	Alpha float64
}

// NewIntegrator returns an Integrator with DefaultIntegratorAlpha.
func NewIntegrator() *Integrator {
	return &Integrator{Alpha: DefaultIntegratorAlpha}
}

func (f *Integrator) Apply(x, y *Buffer, pos int64) {
	y.Set(pos, f.Alpha*y.At(pos-1)+x.At(pos))
}

// Differencer is the first difference, y[i] = x[i] - x[i-1], turning white
// input into blue (f^2) noise.
type Differencer struct{}

func (Differencer) Apply(x, y *Buffer, pos int64) {
	y.Set(pos, x.At(pos)-x.At(pos-1))
}

// NewFilterForExponent selects the filter shaping white noise toward the
// spectral exponent: identity for 0, integrator for negative, differencer
// for positive exponents.
func NewFilterForExponent(exponent float64) Filter {
	switch {
	case exponent == 0:
		return Identity{}
	case exponent < 0:
		return NewIntegrator()
	default:
		return Differencer{}
	}
}
