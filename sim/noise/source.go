package noise

import (
	"fmt"
	"math/rand"
)

// Source produces raw samples at discrete indices.
type Source interface {
	// Reset returns the source to its initial deterministic state.
	Reset()

	// Fill writes the raw sample for pos into x.
	Fill(x *Buffer, pos int64)
}

// WhiteSource draws independent standard-normal deviates from a seeded
// generator. Reset reseeds with the current seed, so the sequence of Fill
// calls after a Reset repeats exactly.
type WhiteSource struct {
	seed int64
	rng  *rand.Rand
}

// NewWhiteSource creates a white-noise source seeded with seed.
func NewWhiteSource(seed int64) *WhiteSource {
	return &WhiteSource{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the source restarts from on Reset.
func (s *WhiteSource) Seed() int64 {
	return s.seed
}

// Reseed replaces the seed and restarts the sequence.
func (s *WhiteSource) Reseed(seed int64) {
	s.seed = seed
	s.Reset()
}

func (s *WhiteSource) Reset() {
	s.rng.Seed(s.seed)
}

func (s *WhiteSource) Fill(x *Buffer, pos int64) {
	x.Set(pos, s.rng.NormFloat64())
}

// SampledSource replays a caller-owned series. The slice is borrowed, never
// copied; the caller must keep it alive and unmodified for the lifetime of
// the source.
type SampledSource struct {
	data []float64
}

// NewSampledSource wraps data without copying it.
func NewSampledSource(data []float64) *SampledSource {
	return &SampledSource{data: data}
}

// Len returns the number of available samples.
func (s *SampledSource) Len() int {
	return len(s.data)
}

func (s *SampledSource) Reset() {}

// Fill copies data[pos] into x. Panics when pos falls outside the series:
// the caller asked for noise beyond what was supplied.
func (s *SampledSource) Fill(x *Buffer, pos int64) {
	if pos < 0 || pos >= int64(len(s.data)) {
		panic(fmt.Sprintf("noise.SampledSource: index %d out of range [0, %d)", pos, len(s.data)))
	}
	x.Set(pos, s.data[pos])
}
