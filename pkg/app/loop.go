package app

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/itohio/gotherm/pkg/convert"
	"github.com/itohio/gotherm/pkg/frame"
	"github.com/itohio/gotherm/pkg/hal"
	"github.com/itohio/gotherm/pkg/sampler"
)

// Loop is the single-threaded control loop. It consumes the pending-event
// flags, owns the display unit selection and renders on demand; between
// events it suspends on the wake channel.
//
// The loop is level-triggered: a flag observed set is handled exactly
// once no matter how many producer events coalesced into it. Rendering is
// synchronous; sampling is timer-driven and never waits for it.
type Loop struct {
	events  *Events
	sched   *sampler.Scheduler
	display hal.Display

	// unit is only ever written by the loop goroutine; atomic storage lets
	// host UIs read it without handshaking.
	unit atomic.Uint32

	buf frame.Buffer
}

// NewLoop creates a control loop. The display is initialized by Run, not
// here.
func NewLoop(events *Events, sched *sampler.Scheduler, display hal.Display) *Loop {
	return &Loop{
		events:  events,
		sched:   sched,
		display: display,
	}
}

// Unit returns the currently selected display unit.
func (l *Loop) Unit() frame.Unit {
	return frame.Unit(l.unit.Load())
}

// Run initializes the display and processes events until ctx is cancelled.
// On the device ctx never cancels and Run is the whole program.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.display.Init(); err != nil {
		return fmt.Errorf("display init: %w", err)
	}

	for {
		// 1. A debounced press toggles the unit and forces a refresh.
		if l.events.TakePress() {
			l.unit.Store(uint32(l.Unit().Toggle()))
			l.events.SignalRender()
		}

		// 2. Render at most once per iteration, then re-check the flags:
		// a press that arrived during the render is handled before idling.
		if l.events.TakeRender() {
			l.render()
			continue
		}

		// 3. Nothing pending: suspend until the next interrupt.
		if err := l.events.Wait(ctx); err != nil {
			return err
		}
	}
}

// render snapshots the latest completed cycle and redraws the display.
// Before the first cycle the zero reading is shown, matching the device's
// zeroed globals at power-on.
func (l *Loop) render() {
	r, _ := l.sched.Current()

	unit := l.Unit()
	temp := r.FilteredC
	if unit == frame.Fahrenheit {
		temp = convert.Fahrenheit(temp)
	}

	frame.Build(&l.buf, frame.Status{
		Voltage:     r.Voltage,
		Temperature: temp,
		Unit:        unit,
	})

	if err := l.display.Render(l.buf.Bytes()); err != nil {
		// A failed transfer leaves stale content; the next cycle's
		// render-pending flag retries. Sampling is unaffected.
		log.Printf("display render failed: %v", err)
	}
}
