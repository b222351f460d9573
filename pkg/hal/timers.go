package hal

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Ensure SystemTimers implements Timers.
var _ Timers = (*SystemTimers)(nil)

// SystemTimers implements Timers on a clock.Clock. With clock.New() it runs
// on real time; with clock.NewMock() tests drive it deterministically.
type SystemTimers struct {
	clk clock.Clock
}

// NewSystemTimers creates a Timers implementation backed by clk.
// A nil clk defaults to the real-time clock.
func NewSystemTimers(clk clock.Clock) *SystemTimers {
	if clk == nil {
		clk = clock.New()
	}
	return &SystemTimers{clk: clk}
}

// SchedulePeriodic invokes fn every period until stop is called.
// Implemented as a self-rescheduling one-shot alarm so that mock clocks
// fire callbacks synchronously from Add().
func (t *SystemTimers) SchedulePeriodic(period time.Duration, fn func()) (stop func()) {
	var mu sync.Mutex
	var timer *clock.Timer
	stopped := false

	var schedule func()
	schedule = func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		timer = t.clk.AfterFunc(period, func() {
			fn()
			schedule()
		})
	}
	schedule()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		stopped = true
		if timer != nil {
			timer.Stop()
		}
	}
}

// ScheduleOnce invokes fn once after delay.
func (t *SystemTimers) ScheduleOnce(delay time.Duration, fn func()) {
	t.clk.AfterFunc(delay, fn)
}
