package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// runFilter feeds in through f and returns the filtered sequence.
func runFilter(f Filter, in []float64) []float64 {
	x, y := NewBuffer(len(in)), NewBuffer(len(in))
	out := make([]float64, len(in))
	for i, v := range in {
		x.Set(int64(i), v)
		f.Apply(x, y, int64(i))
		out[i] = y.At(int64(i))
	}
	return out
}

func TestFilters_KnownSequences(t *testing.T) {
	in := []float64{1, 0, 0, 2, -1}

	tests := []struct {
		name   string
		filter Filter
		want   []float64
	}{
		{"identity", Identity{}, []float64{1, 0, 0, 2, -1}},
		{"integrator alpha 1", &Integrator{Alpha: 1}, []float64{1, 1, 1, 3, 2}},
		{"integrator alpha 0.5", &Integrator{Alpha: 0.5}, []float64{1, 0.5, 0.25, 2.125, 0.0625}},
		// x[-1] reads as zero, so the first output equals the first input.
		{"differencer", Differencer{}, []float64{1, -1, 0, 2, -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDeltaSlice(t, tt.want, runFilter(tt.filter, in), 1e-15)
		})
	}
}

func TestNewIntegrator_DefaultAlpha(t *testing.T) {
	assert.Equal(t, 0.9999, NewIntegrator().Alpha)
}

func TestNewFilterForExponent_SelectsBySign(t *testing.T) {
	assert.IsType(t, Identity{}, NewFilterForExponent(0))
	assert.IsType(t, &Integrator{}, NewFilterForExponent(-2))
	assert.IsType(t, &Integrator{}, NewFilterForExponent(-0.5))
	assert.IsType(t, Differencer{}, NewFilterForExponent(2))
}
