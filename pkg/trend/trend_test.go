package trend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/gotherm/pkg/convert"
	"github.com/itohio/gotherm/pkg/frame"
)

func measurementAt(ts time.Time, c float32) convert.Measurement {
	return convert.Measurement{
		Timestamp: ts,
		FilteredC: c,
		Unit:      frame.Celsius,
	}
}

func TestTrend_EmptyHistory(t *testing.T) {
	tr := New(time.Minute)

	_, ok := tr.Current()
	assert.False(t, ok)
	assert.Equal(t, Stats{}, tr.Stats())
	assert.Empty(t, tr.Measurements())
}

func TestTrend_CurrentIsNewest(t *testing.T) {
	tr := New(time.Minute)
	now := time.Now()

	tr.process(measurementAt(now, 20))
	tr.process(measurementAt(now.Add(time.Second), 21))

	m, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, float32(21), m.FilteredC)
	assert.Len(t, tr.Measurements(), 2)
}

func TestTrend_EvictsByTimestamp(t *testing.T) {
	tr := New(10 * time.Second)
	now := time.Now()

	tr.process(measurementAt(now, 20))
	tr.process(measurementAt(now.Add(5*time.Second), 21))
	tr.process(measurementAt(now.Add(15*time.Second), 22))

	// The first measurement is more than 10s older than the newest.
	ms := tr.Measurements()
	require.Len(t, ms, 2)
	assert.Equal(t, float32(21), ms[0].FilteredC)
	assert.Equal(t, float32(22), ms[1].FilteredC)
}

func TestTrend_Stats(t *testing.T) {
	tr := New(time.Minute)
	now := time.Now()

	for i, c := range []float32{20, 25, 30} {
		tr.process(measurementAt(now.Add(time.Duration(i)*time.Second), c))
	}

	s := tr.Stats()
	assert.Equal(t, float32(20), s.MinC)
	assert.Equal(t, float32(30), s.MaxC)
	assert.InDelta(t, 25.0, s.MeanC, 1e-5)
	assert.Equal(t, 3, s.Count)
}

func TestTrend_OnUpdateCallbacks(t *testing.T) {
	tr := New(time.Minute)

	var got []float32
	tr.OnUpdate(func(m convert.Measurement) {
		got = append(got, m.FilteredC)
	})
	tr.OnUpdate(nil)

	tr.process(measurementAt(time.Now(), 20))
	tr.process(measurementAt(time.Now(), 21))

	assert.Equal(t, []float32{20, 21}, got)
}

func TestTrend_ProcessMeasurements(t *testing.T) {
	tr := New(time.Minute)
	in := make(chan convert.Measurement, 3)
	now := time.Now()
	for i := 0; i < 3; i++ {
		in <- measurementAt(now.Add(time.Duration(i)*time.Second), float32(20+i))
	}
	close(in)

	tr.ProcessMeasurements(in)

	assert.Equal(t, 3, tr.Stats().Count)

	// After the channel closes the trend is shut down and drops input.
	tr.process(measurementAt(now.Add(time.Minute), 99))
	assert.Equal(t, 3, tr.Stats().Count)

	tr.ResetShutdown()
	assert.Equal(t, 0, tr.Stats().Count)
	tr.process(measurementAt(now.Add(time.Minute), 99))
	assert.Equal(t, 1, tr.Stats().Count)
}

func TestTrend_ZeroWindowUsesDefault(t *testing.T) {
	tr := New(0)
	assert.Equal(t, DefaultWindow, tr.window)
}
