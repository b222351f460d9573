package input

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/gotherm/pkg/hal"
)

// fakeButton simulates a GPIO edge source with a maskable interrupt.
type fakeButton struct {
	fn      func()
	enabled atomic.Bool
}

func (b *fakeButton) OnFallingEdge(fn func()) { b.fn = fn }
func (b *fakeButton) Enable()                 { b.enabled.Store(true) }
func (b *fakeButton) Disable()                { b.enabled.Store(false) }

// edge delivers a falling edge, which the hardware only reports while the
// interrupt is enabled.
func (b *fakeButton) edge() {
	if b.enabled.Load() && b.fn != nil {
		b.fn()
	}
}

var _ hal.Button = (*fakeButton)(nil)

func setup(delay time.Duration) (*fakeButton, *clock.Mock, *Debouncer, *atomic.Int32) {
	btn := &fakeButton{}
	mock := clock.NewMock()
	var presses atomic.Int32
	d := New(btn, hal.NewSystemTimers(mock), delay, func() { presses.Add(1) })
	d.Arm()
	return btn, mock, d, &presses
}

func TestDebouncer_SinglePress(t *testing.T) {
	btn, _, d, presses := setup(200 * time.Millisecond)

	btn.edge()
	assert.Equal(t, int32(1), presses.Load())
	assert.True(t, d.Debouncing())
}

func TestDebouncer_BounceWithinWindowRegistersOnce(t *testing.T) {
	btn, mock, _, presses := setup(200 * time.Millisecond)

	// A mechanical press: the first edge plus a burst of bounces.
	btn.edge()
	for i := 0; i < 10; i++ {
		mock.Add(5 * time.Millisecond)
		btn.edge()
	}
	assert.Equal(t, int32(1), presses.Load(), "bounce edges within the lockout must coalesce")
}

func TestDebouncer_RearmsAfterDelay(t *testing.T) {
	btn, mock, d, presses := setup(200 * time.Millisecond)

	btn.edge()
	require.Equal(t, int32(1), presses.Load())

	mock.Add(199 * time.Millisecond)
	assert.True(t, d.Debouncing())
	btn.edge()
	assert.Equal(t, int32(1), presses.Load(), "still locked out just before the delay")

	mock.Add(1 * time.Millisecond)
	assert.False(t, d.Debouncing())

	btn.edge()
	assert.Equal(t, int32(2), presses.Load(), "a press after re-arm registers again")
}

func TestDebouncer_InterruptMaskedDuringLockout(t *testing.T) {
	btn, mock, _, _ := setup(200 * time.Millisecond)

	assert.True(t, btn.enabled.Load(), "armed detector enables the interrupt")
	btn.edge()
	assert.False(t, btn.enabled.Load(), "lockout masks the interrupt")

	mock.Add(200 * time.Millisecond)
	assert.True(t, btn.enabled.Load(), "re-arm unmasks the interrupt")
}

// A dropped re-arm alarm leaves the detector stuck in Debouncing and every
// further press is lost. This is the accepted failure mode of the
// single-shot alarm model; the test pins the behavior down rather than
// pretending it cannot happen.
func TestDebouncer_StuckWhenRearmNeverFires(t *testing.T) {
	btn := &fakeButton{}
	var presses atomic.Int32
	d := New(btn, dropTimers{}, 200*time.Millisecond, func() { presses.Add(1) })
	d.Arm()

	btn.edge()
	require.Equal(t, int32(1), presses.Load())
	require.True(t, d.Debouncing())

	// No amount of waiting or pressing helps: the alarm is gone.
	btn.edge()
	btn.edge()
	assert.Equal(t, int32(1), presses.Load())
	assert.True(t, d.Debouncing())
}

// dropTimers schedules nothing, modeling a platform that loses one-shot
// alarms.
type dropTimers struct{}

func (dropTimers) SchedulePeriodic(time.Duration, func()) func() { return func() {} }
func (dropTimers) ScheduleOnce(time.Duration, func())           {}

var _ hal.Timers = dropTimers{}

func TestNew_InvalidDelayFallsBackToDefault(t *testing.T) {
	d := New(&fakeButton{}, dropTimers{}, 0, nil)
	assert.Equal(t, DefaultDelay, d.delay)
}

func TestDebouncer_NilOnPressIsSafe(t *testing.T) {
	btn := &fakeButton{}
	mock := clock.NewMock()
	d := New(btn, hal.NewSystemTimers(mock), 50*time.Millisecond, nil)
	d.Arm()

	btn.edge()
	assert.True(t, d.Debouncing())
	mock.Add(50 * time.Millisecond)
	assert.False(t, d.Debouncing())
}
