package hal

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
)

func TestSystemTimers_ScheduleOnce(t *testing.T) {
	mock := clock.NewMock()
	timers := NewSystemTimers(mock)

	var fired atomic.Int32
	timers.ScheduleOnce(200*time.Millisecond, func() {
		fired.Add(1)
	})

	mock.Add(199 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load(), "should not fire before the delay")

	mock.Add(1 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load(), "should fire exactly once at the delay")

	mock.Add(time.Second)
	assert.Equal(t, int32(1), fired.Load(), "one-shot alarm must not repeat")
}

func TestSystemTimers_SchedulePeriodic(t *testing.T) {
	mock := clock.NewMock()
	timers := NewSystemTimers(mock)

	var ticks atomic.Int32
	stop := timers.SchedulePeriodic(500*time.Millisecond, func() {
		ticks.Add(1)
	})

	mock.Add(499 * time.Millisecond)
	assert.Equal(t, int32(0), ticks.Load())

	mock.Add(1 * time.Millisecond)
	assert.Equal(t, int32(1), ticks.Load())

	mock.Add(2 * time.Second)
	assert.Equal(t, int32(5), ticks.Load(), "one tick per period")

	stop()
	mock.Add(5 * time.Second)
	assert.Equal(t, int32(5), ticks.Load(), "no ticks after stop")
}

func TestSystemTimers_StopIsIdempotent(t *testing.T) {
	mock := clock.NewMock()
	timers := NewSystemTimers(mock)

	stop := timers.SchedulePeriodic(time.Second, func() {})
	stop()
	stop()

	mock.Add(10 * time.Second)
}

func TestNewSystemTimers_NilClockDefaultsToRealTime(t *testing.T) {
	timers := NewSystemTimers(nil)
	assert.NotNil(t, timers)

	done := make(chan struct{})
	timers.ScheduleOnce(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("real-time alarm did not fire")
	}
}
