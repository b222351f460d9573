// Package input implements the debounced push-button event source. A
// falling edge is recorded as one press, the interrupt is masked for a
// lockout window and re-armed by a one-shot alarm; edges during the
// lockout are never observed, so mechanical bounce yields one press.
package input

import (
	"sync/atomic"
	"time"

	"github.com/itohio/gotherm/pkg/hal"
)

// DefaultDelay is the debounce lockout after a falling edge.
const DefaultDelay = 200 * time.Millisecond

// Debouncer is the edge detector state machine: Armed (interrupt enabled,
// waiting for an edge) or Debouncing (interrupt masked, re-arm scheduled).
//
// If the platform drops the one-shot re-arm alarm the detector stays in
// Debouncing and further presses are silently lost until reset; the
// single-shot alarm model has no recovery path for that.
type Debouncer struct {
	button  hal.Button
	timers  hal.Timers
	delay   time.Duration
	onPress func()

	debouncing atomic.Bool
}

// New creates a debouncer for button. onPress is invoked once per debounced
// press, from the edge interrupt context; it must only set flags and wake
// the loop. The detector is idle until Arm is called.
func New(button hal.Button, timers hal.Timers, delay time.Duration, onPress func()) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{
		button:  button,
		timers:  timers,
		delay:   delay,
		onPress: onPress,
	}
}

// Arm registers the edge callback and enables the interrupt.
func (d *Debouncer) Arm() {
	d.button.OnFallingEdge(d.onEdge)
	d.button.Enable()
}

// Debouncing reports whether the detector is inside the lockout window.
func (d *Debouncer) Debouncing() bool {
	return d.debouncing.Load()
}

// onEdge handles one falling edge. The CAS guards against edges delivered
// after Disable was requested but before the mask took effect.
func (d *Debouncer) onEdge() {
	if !d.debouncing.CompareAndSwap(false, true) {
		return
	}

	d.button.Disable()

	if d.onPress != nil {
		d.onPress()
	}

	d.timers.ScheduleOnce(d.delay, d.rearm)
}

// rearm leaves the lockout window. The state flips before the interrupt is
// unmasked so an immediate edge is not mistaken for bounce.
func (d *Debouncer) rearm() {
	d.debouncing.Store(false)
	d.button.Enable()
}
