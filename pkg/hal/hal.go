// Package hal defines the hardware collaborator interfaces the control loop
// is written against. Implementations exist for the Pico firmware (TinyGo),
// for Linux single-board computers (periph.io) and as in-memory fakes for
// tests and the desktop simulator.
package hal

import "time"

// Sensor reads one raw ADC count from the temperature input.
// Reads are synchronous and non-blocking; the value is in [0, fullScale).
type Sensor interface {
	ReadRaw() uint16
}

// Display is an opaque pixel sink. Render takes a full page-addressed frame
// buffer of fixed length (height/8 * width bytes).
type Display interface {
	Init() error
	Render(buf []byte) error
}

// Indicator drives a binary output, such as the under-temperature LED.
type Indicator interface {
	Set(on bool)
}

// Button is a falling-edge input with a maskable interrupt. While disabled,
// edges are not observed at all.
type Button interface {
	OnFallingEdge(fn func())
	Enable()
	Disable()
}

// Timers schedules callbacks on hardware-timer-like alarms. Callbacks run
// asynchronously with respect to the caller, like interrupt handlers.
type Timers interface {
	// SchedulePeriodic invokes fn every period until the returned stop
	// function is called. The periodic sampler runs on this for the process
	// lifetime and is never cancelled in normal operation.
	SchedulePeriodic(period time.Duration, fn func()) (stop func())

	// ScheduleOnce invokes fn once after delay. There is no cancellation
	// path once scheduled (single-shot alarm model).
	ScheduleOnce(delay time.Duration, fn func())
}
