package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow_FirstPushNoDivisionByZero(t *testing.T) {
	w := New(40)

	got := w.Push(21.5)
	assert.InDelta(t, 21.5, got, 1e-6, "mean of a single sample is that sample")
	assert.Equal(t, 1, w.Len())
	assert.False(t, w.Filled())
}

func TestWindow_PartialFillMeanHasNoPhantomZeros(t *testing.T) {
	w := New(40)

	values := []float32{10, 20, 30, 40, 50}
	var sum float32
	for i, v := range values {
		sum += v
		got := w.Push(v)
		want := sum / float32(i+1)
		assert.InDelta(t, want, got, 1e-4, "mean after %d pushes", i+1)
	}
	assert.Equal(t, len(values), w.Len())
	assert.False(t, w.Filled())
}

func TestWindow_WrapsAfterCapacityPushes(t *testing.T) {
	w := New(40)

	for i := 0; i < 39; i++ {
		w.Push(1.0)
		assert.False(t, w.Filled())
	}
	w.Push(1.0)
	assert.True(t, w.Filled())
	assert.Equal(t, 40, w.Len())
}

func TestWindow_WraparoundMeanCoversLastNValues(t *testing.T) {
	w := New(40)

	// 40 ones, then a 41st value of 41 overwrites the oldest entry:
	// mean = (39*1 + 41) / 40 = 2.0
	for i := 0; i < 40; i++ {
		w.Push(1.0)
	}
	got := w.Push(41.0)
	assert.InDelta(t, 2.0, got, 1e-5)
	assert.Equal(t, 40, w.Len(), "count stays at capacity after wrap")
}

func TestWindow_LongRunStaysAtCapacity(t *testing.T) {
	w := New(8)

	var got float32
	for i := 1; i <= 100; i++ {
		got = w.Push(float32(i))
	}
	// Last 8 values: 93..100, mean 96.5.
	assert.InDelta(t, 96.5, got, 1e-4)
	assert.True(t, w.Filled())
}

func TestWindow_Reset(t *testing.T) {
	w := New(4)
	for i := 0; i < 10; i++ {
		w.Push(5.0)
	}
	require.True(t, w.Filled())

	w.Reset()
	assert.Equal(t, 0, w.Len())
	assert.False(t, w.Filled())

	got := w.Push(3.0)
	assert.InDelta(t, 3.0, got, 1e-6, "stale entries must not leak into the mean after reset")
}

func TestNew_InvalidCapacityFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultCapacity, New(0).Cap())
	assert.Equal(t, DefaultCapacity, New(-3).Cap())
	assert.Equal(t, 7, New(7).Cap())
}
