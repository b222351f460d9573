// Package filter implements the moving-average smoothing window applied to
// raw temperature samples before display and threshold decisions.
package filter

// DefaultCapacity is the number of samples in the smoothing window.
const DefaultCapacity = 40

// Window is a fixed-capacity circular buffer of recent samples. It is owned
// by a single writer (the periodic sampler) and is not internally locked;
// concurrent Push calls are a caller bug.
type Window struct {
	values []float32
	cursor int
	filled bool
}

// New creates a window with the given capacity. Non-positive capacities
// fall back to DefaultCapacity.
func New(capacity int) *Window {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Window{values: make([]float32, capacity)}
}

// Push inserts v at the write cursor, advances the cursor modulo the
// capacity and returns the arithmetic mean over all currently valid
// entries: the full window once it has wrapped at least once, otherwise
// exactly the values pushed so far. The count is never zero because the
// cursor is at least 1 right after the first insertion.
func (w *Window) Push(v float32) float32 {
	w.values[w.cursor] = v
	w.cursor = (w.cursor + 1) % len(w.values)
	if w.cursor == 0 {
		w.filled = true
	}

	count := w.cursor
	if w.filled {
		count = len(w.values)
	}

	var sum float32
	for i := 0; i < count; i++ {
		sum += w.values[i]
	}
	return sum / float32(count)
}

// Len returns the number of valid entries the mean is computed over.
func (w *Window) Len() int {
	if w.filled {
		return len(w.values)
	}
	return w.cursor
}

// Cap returns the window capacity.
func (w *Window) Cap() int {
	return len(w.values)
}

// Filled reports whether the window has wrapped at least once.
func (w *Window) Filled() bool {
	return w.filled
}

// Reset discards all accumulated samples.
func (w *Window) Reset() {
	w.cursor = 0
	w.filled = false
}
