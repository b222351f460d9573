// Package app contains the cooperative control loop and the shared signal
// state between the interrupt-like producer contexts (timer, button) and
// the loop itself.
package app

import (
	"context"
	"sync/atomic"
)

// Flag is a level-triggered pending-event signal with one producer and one
// consumer. Later sets before consumption coalesce; only "currently set"
// matters, not the count.
type Flag struct {
	v atomic.Bool
}

// Set marks the flag pending.
func (f *Flag) Set() {
	f.v.Store(true)
}

// TakeIfSet atomically clears the flag and reports whether it was set, so
// a producer setting it concurrently is never lost between check and clear.
func (f *Flag) TakeIfSet() bool {
	return f.v.Swap(false)
}

// IsSet reports the flag without clearing it.
func (f *Flag) IsSet() bool {
	return f.v.Load()
}

// Events is the complete shared signal state: the two pending-event flags
// plus the wake channel that stands in for the wait-for-interrupt idle
// point. Wakes coalesce in the capacity-1 channel the same way the flags
// do.
type Events struct {
	press  Flag
	render Flag
	wake   chan struct{}
}

// NewEvents creates the shared signal state with all flags clear.
func NewEvents() *Events {
	return &Events{wake: make(chan struct{}, 1)}
}

// SignalPress records a debounced button press and wakes the loop.
// Called from the button interrupt context.
func (e *Events) SignalPress() {
	e.press.Set()
	e.Wake()
}

// SignalRender marks the display stale and wakes the loop. Called from the
// timer interrupt context, strictly after the cycle's snapshot publish.
func (e *Events) SignalRender() {
	e.render.Set()
	e.Wake()
}

// TakePress consumes the press flag.
func (e *Events) TakePress() bool {
	return e.press.TakeIfSet()
}

// TakeRender consumes the render flag.
func (e *Events) TakeRender() bool {
	return e.render.TakeIfSet()
}

// Wake never blocks; a wake arriving while one is already pending is
// coalesced.
func (e *Events) Wake() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// Wait blocks until a wake arrives or ctx is cancelled. This is the only
// suspension point of the control loop.
func (e *Events) Wait(ctx context.Context) error {
	select {
	case <-e.wake:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
