package noise

import (
	"fmt"
	"math"
)

// Interpolator reconstructs a continuous-time value at ind+frac from the
// discrete samples of s, with frac in [0, 1).
type Interpolator interface {
	Reconstruct(s Sampler, ind int64, frac float64) float64

	// Span bounds the samples the interpolator reads around the query: never
	// before ind-Span nor after ind+Span.
	Span() int
}

// Nearest returns the sample closer to the query position.
type Nearest struct{}

func (Nearest) Reconstruct(s Sampler, ind int64, frac float64) float64 {
	if frac < 0.5 {
		return s.At(ind)
	}
	return s.At(ind + 1)
}

func (Nearest) Span() int { return 1 }

// Linear interpolates between ind and ind+1.
type Linear struct{}

func (Linear) Reconstruct(s Sampler, ind int64, frac float64) float64 {
	return (1-frac)*s.At(ind) + frac*s.At(ind+1)
}

func (Linear) Span() int { return 1 }

// LinearExtrapolator projects forward from ind-1 and ind only, for callers
// that cannot rely on ind+1 being meaningful yet.
type LinearExtrapolator struct{}

func (LinearExtrapolator) Reconstruct(s Sampler, ind int64, frac float64) float64 {
	return -frac*s.At(ind-1) + (1+frac)*s.At(ind)
}

func (LinearExtrapolator) Span() int { return 1 }

// Lagrange evaluates the polynomial through the 2·SemiWindow samples
// ind-SemiWindow+1 .. ind+SemiWindow at ind+frac.
type Lagrange struct {
	SemiWindow int

	xa, ya []float64
	c, d   []float64
}

// NewLagrange returns a Lagrange interpolator over 2·semiWindow samples.
// Panics if semiWindow < 1.
func NewLagrange(semiWindow int) *Lagrange {
	if semiWindow < 1 {
		panic(fmt.Sprintf("noise.Lagrange: semi-window must be >= 1, got %d", semiWindow))
	}
	n := 2 * semiWindow
	l := &Lagrange{
		SemiWindow: semiWindow,
		xa:         make([]float64, n),
		ya:         make([]float64, n),
		c:          make([]float64, n),
		d:          make([]float64, n),
	}
	for i := range l.xa {
		l.xa[i] = float64(i + 1)
	}
	return l
}

func (l *Lagrange) Span() int { return l.SemiWindow }

func (l *Lagrange) Reconstruct(s Sampler, ind int64, frac float64) float64 {
	sw := l.SemiWindow
	// ya[k] holds the sample at abscissa k+1, i.e. index ind-sw+1+k.
	for i := 0; i < sw; i++ {
		l.ya[sw-1-i] = s.At(ind - int64(i))
		l.ya[sw+i] = s.At(ind + int64(i) + 1)
	}
	return l.neville(float64(sw) + frac)
}

// neville evaluates the interpolating polynomial through (xa, ya) at x.
func (l *Lagrange) neville(x float64) float64 {
	n := len(l.xa)
	ns := 0
	dif := math.Abs(x - l.xa[0])
	for i := 0; i < n; i++ {
		if dift := math.Abs(x - l.xa[i]); dift < dif {
			ns = i
			dif = dift
		}
		l.c[i] = l.ya[i]
		l.d[i] = l.ya[i]
	}
	y := l.ya[ns]
	ns--
	for m := 1; m < n; m++ {
		for i := 0; i < n-m; i++ {
			ho := l.xa[i] - x
			hp := l.xa[i+m] - x
			w := l.c[i+1] - l.d[i]
			// xa entries are distinct integers, so ho-hp never vanishes.
			den := w / (ho - hp)
			l.d[i] = hp * den
			l.c[i] = ho * den
		}
		if 2*(ns+1) < n-m {
			y += l.c[ns+1]
		} else {
			y += l.d[ns]
			ns--
		}
	}
	return y
}

// NewInterpolator maps a window setting to an interpolator:
// 0 nearest, 1 linear, -1 linear extrapolation, >= 2 Lagrange over that
// semi-window.
func NewInterpolator(window int) (Interpolator, error) {
	switch {
	case window == 0:
		return Nearest{}, nil
	case window == 1:
		return Linear{}, nil
	case window == -1:
		return LinearExtrapolator{}, nil
	case window >= 2:
		return NewLagrange(window), nil
	default:
		return nil, fmt.Errorf("%w: %d (valid: -1, 0, 1, or >= 2)", ErrInvalidWindow, window)
	}
}
