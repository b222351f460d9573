// Package trend maintains a time-windowed history of processed
// measurements for the host tools: latest value, window statistics and
// update callbacks for UI refresh.
package trend

import (
	"sync"
	"time"

	"github.com/itohio/gotherm/pkg/convert"
)

// DefaultWindow is the history span kept for statistics.
const DefaultWindow = 60 * time.Second

// Stats summarizes the smoothed temperature over the window.
type Stats struct {
	MinC  float32
	MaxC  float32
	MeanC float32
	Count int
}

// Trend accumulates measurements in arrival order and evicts by timestamp.
// The internal buffer is FIFO: oldest measurement at index 0, newest last.
type Trend struct {
	window time.Duration

	mu           sync.RWMutex
	measurements []convert.Measurement
	shutdown     bool

	cbMu      sync.RWMutex
	callbacks []func(m convert.Measurement)
}

// New creates a trend with the given history window.
func New(window time.Duration) *Trend {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Trend{
		window:       window,
		measurements: make([]convert.Measurement, 0),
	}
}

// ProcessMeasurements consumes the input channel until it closes. When the
// channel closes the shutdown flag suppresses further callbacks.
func (t *Trend) ProcessMeasurements(in <-chan convert.Measurement) {
	for m := range in {
		t.process(m)
	}
	t.mu.Lock()
	t.shutdown = true
	t.mu.Unlock()
}

// process appends one measurement, evicts expired history and notifies.
func (t *Trend) process(m convert.Measurement) {
	t.mu.Lock()
	if t.shutdown {
		t.mu.Unlock()
		return
	}

	t.measurements = append(t.measurements, m)

	// Evict by timestamp, not count.
	cutoff := m.Timestamp.Add(-t.window)
	idx := 0
	for idx < len(t.measurements) && !t.measurements[idx].Timestamp.After(cutoff) {
		idx++
	}
	if idx > 0 {
		t.measurements = append(t.measurements[:0], t.measurements[idx:]...)
	}
	t.mu.Unlock()

	t.cbMu.RLock()
	callbacks := t.callbacks
	t.cbMu.RUnlock()
	for _, cb := range callbacks {
		cb(m)
	}
}

// OnUpdate registers a callback invoked with each processed measurement.
// Callbacks run on the processing goroutine and must return quickly.
func (t *Trend) OnUpdate(fn func(m convert.Measurement)) {
	if fn == nil {
		return
	}
	t.cbMu.Lock()
	t.callbacks = append(t.callbacks, fn)
	t.cbMu.Unlock()
}

// Current returns the newest measurement. ok is false while the history is
// empty.
func (t *Trend) Current() (convert.Measurement, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.measurements) == 0 {
		return convert.Measurement{}, false
	}
	return t.measurements[len(t.measurements)-1], true
}

// Measurements returns a copy of the current window, oldest first.
func (t *Trend) Measurements() []convert.Measurement {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]convert.Measurement, len(t.measurements))
	copy(out, t.measurements)
	return out
}

// Stats computes min/max/mean of the smoothed temperature over the window.
func (t *Trend) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.measurements) == 0 {
		return Stats{}
	}

	s := Stats{
		MinC:  t.measurements[0].FilteredC,
		MaxC:  t.measurements[0].FilteredC,
		Count: len(t.measurements),
	}
	var sum float32
	for _, m := range t.measurements {
		if m.FilteredC < s.MinC {
			s.MinC = m.FilteredC
		}
		if m.FilteredC > s.MaxC {
			s.MaxC = m.FilteredC
		}
		sum += m.FilteredC
	}
	s.MeanC = sum / float32(len(t.measurements))
	return s
}

// ResetShutdown re-enables processing for a new measurement chain.
func (t *Trend) ResetShutdown() {
	t.mu.Lock()
	t.shutdown = false
	t.measurements = t.measurements[:0]
	t.mu.Unlock()
}
