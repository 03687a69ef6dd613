// Package noise synthesizes fixed-cadence discrete noise on demand and
// reconstructs it at continuous times.
//
// The pipeline, leaves first:
//   - Buffer: fixed-capacity ring addressed by a monotonically growing index
//   - Source: fills raw samples (WhiteSource, SampledSource)
//   - Filter: causal shaping from raw to filtered samples
//   - Cache: forward-only generation over a raw/filtered Buffer pair
//   - Interpolator: continuous-time reconstruction from cached samples
//   - InterpolatedNoise: dimensioned facade tying the above together
//
// Nothing in this package is safe for concurrent use.
package noise

import "fmt"

// Buffer is a fixed-capacity ring of float64 samples addressed by an
// unbounded index (index mod capacity). Negative indices read as exactly
// zero and writes to them are dropped; they model pre-run silence.
//
// Buffer does not know which indices are live. Callers (Cache) bound-check
// against their own watermarks before reading.
type Buffer struct {
	data []float64
}

// NewBuffer allocates a zeroed ring of the given capacity.
// Panics if capacity < 1.
func NewBuffer(capacity int) *Buffer {
	if capacity < 1 {
		panic(fmt.Sprintf("noise.Buffer: capacity must be >= 1, got %d", capacity))
	}
	return &Buffer{data: make([]float64, capacity)}
}

// Cap returns the ring capacity.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// At returns the sample stored for pos, or 0 for negative pos.
func (b *Buffer) At(pos int64) float64 {
	if pos < 0 {
		return 0
	}
	return b.data[pos%int64(len(b.data))]
}

// Set stores v for pos. Negative positions are ignored.
func (b *Buffer) Set(pos int64, v float64) {
	if pos < 0 {
		return
	}
	b.data[pos%int64(len(b.data))] = v
}

// Reset zeroes every slot.
func (b *Buffer) Reset() {
	clear(b.data)
}
