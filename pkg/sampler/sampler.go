// Package sampler runs the periodic sample/filter/indicator cycle. Each
// cycle publishes one immutable Reading snapshot with a single atomic
// store, so the control loop sees either the complete previous cycle or
// the complete new one, never a torn mix.
package sampler

import (
	"sync/atomic"
	"time"

	"github.com/itohio/gotherm/pkg/convert"
	"github.com/itohio/gotherm/pkg/filter"
	"github.com/itohio/gotherm/pkg/hal"
)

// DefaultPeriod is the sensor sampling period.
const DefaultPeriod = 500 * time.Millisecond

// Params holds the fixed conversion and threshold constants.
type Params struct {
	VRef       float32
	FullScale  int
	OffsetV    float32
	SlopeVPerC float32
	ThresholdC float32
}

// DefaultParams returns the constants for the reference hardware.
func DefaultParams() Params {
	return Params{
		VRef:       convert.DefaultVRef,
		FullScale:  convert.DefaultFullScale,
		OffsetV:    convert.DefaultOffsetV,
		SlopeVPerC: convert.DefaultSlopeVPerC,
		ThresholdC: 40.0,
	}
}

// Reading is one completed sample/filter cycle.
type Reading struct {
	Raw         uint16
	Voltage     float32
	RawC        float32
	FilteredC   float32
	IndicatorOn bool
}

// Scheduler owns the filter window and the indicator output. Tick runs in
// the timer interrupt context; everything it mutates is either owned by it
// exclusively (the window) or published atomically (the snapshot).
type Scheduler struct {
	sensor    hal.Sensor
	indicator hal.Indicator
	params    Params
	window    *filter.Window

	current atomic.Pointer[Reading]

	// onReading runs after the snapshot is published, still in the timer
	// context. Wired to the render-pending flag and telemetry output.
	onReading func(Reading)
}

// New creates a scheduler. windowSize <= 0 selects the default filter
// capacity.
func New(sensor hal.Sensor, indicator hal.Indicator, params Params, windowSize int, onReading func(Reading)) *Scheduler {
	return &Scheduler{
		sensor:    sensor,
		indicator: indicator,
		params:    params,
		window:    filter.New(windowSize),
		onReading: onReading,
	}
}

// Tick runs one sampling cycle: read, convert, filter, drive the
// indicator, publish the snapshot, then signal. The flag producers run
// strictly after the snapshot store, which is what lets the consumer trust
// a set flag.
func (s *Scheduler) Tick() {
	raw := s.sensor.ReadRaw()
	v := convert.Voltage(raw, s.params.VRef, s.params.FullScale)
	rawC := convert.Celsius(v, s.params.OffsetV, s.params.SlopeVPerC)
	filtered := s.window.Push(rawC)
	on := filtered < s.params.ThresholdC

	s.indicator.Set(on)

	r := Reading{
		Raw:         raw,
		Voltage:     v,
		RawC:        rawC,
		FilteredC:   filtered,
		IndicatorOn: on,
	}
	s.current.Store(&r)

	if s.onReading != nil {
		s.onReading(r)
	}
}

// Start schedules Tick on the periodic timer. The returned stop function
// exists for host-side shutdown; on the device the sampler runs for the
// process lifetime.
func (s *Scheduler) Start(timers hal.Timers, period time.Duration) (stop func()) {
	if period <= 0 {
		period = DefaultPeriod
	}
	return timers.SchedulePeriodic(period, s.Tick)
}

// Current returns the most recently published snapshot. ok is false before
// the first completed cycle.
func (s *Scheduler) Current() (Reading, bool) {
	p := s.current.Load()
	if p == nil {
		return Reading{}, false
	}
	return *p, true
}
