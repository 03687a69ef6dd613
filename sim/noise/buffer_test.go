package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBuffer_ZeroCapacity_Panics(t *testing.T) {
	assert.PanicsWithValue(t,
		"noise.Buffer: capacity must be >= 1, got 0",
		func() { NewBuffer(0) })
}

func TestBuffer_NegativeIndex_ReadsZero(t *testing.T) {
	// GIVEN a buffer whose every slot holds a non-zero value
	b := NewBuffer(4)
	for i := int64(0); i < 4; i++ {
		b.Set(i, float64(i)+1)
	}

	// WHEN writing to a negative index
	b.Set(-3, 99)

	// THEN negative reads are exactly zero and the write was dropped
	for _, pos := range []int64{-1, -2, -3, -1000} {
		assert.Equal(t, 0.0, b.At(pos), "At(%d)", pos)
	}
	assert.Equal(t, []float64{1, 2, 3, 4}, b.data)
}

func TestBuffer_WrapsModuloCapacity(t *testing.T) {
	b := NewBuffer(3)
	b.Set(2, 7)
	b.Set(5, 11) // same slot as 2

	assert.Equal(t, 11.0, b.At(2))
	assert.Equal(t, 11.0, b.At(5))
	assert.Equal(t, 3, b.Cap())
}

func TestBuffer_Reset_ZeroesSlots(t *testing.T) {
	b := NewBuffer(2)
	b.Set(0, 1)
	b.Set(1, 2)
	b.Reset()
	assert.Equal(t, 0.0, b.At(0))
	assert.Equal(t, 0.0, b.At(1))
}
