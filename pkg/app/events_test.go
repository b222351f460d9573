package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlag_TakeIfSet(t *testing.T) {
	var f Flag

	assert.False(t, f.TakeIfSet(), "clear flag yields nothing")

	f.Set()
	assert.True(t, f.IsSet())
	assert.True(t, f.TakeIfSet(), "set flag is consumed")
	assert.False(t, f.IsSet())
	assert.False(t, f.TakeIfSet(), "consumption clears the flag")
}

func TestFlag_SetsCoalesce(t *testing.T) {
	var f Flag

	f.Set()
	f.Set()
	f.Set()
	assert.True(t, f.TakeIfSet())
	assert.False(t, f.TakeIfSet(), "repeated sets collapse into one pending event")
}

func TestEvents_SignalsSetFlagsAndWake(t *testing.T) {
	e := NewEvents()

	e.SignalPress()
	assert.True(t, e.TakePress())

	e.SignalRender()
	assert.True(t, e.TakeRender())

	// Both signals left at most one pending wake.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, e.Wait(ctx))

	ctx2, cancel2 := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel2()
	assert.Error(t, e.Wait(ctx2), "no second wake is pending")
}

func TestEvents_WakeNeverBlocks(t *testing.T) {
	e := NewEvents()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			e.Wake()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wake blocked")
	}
}

func TestEvents_WaitUnblocksOnWake(t *testing.T) {
	e := NewEvents()

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Wait(context.Background())
	}()

	time.Sleep(10 * time.Millisecond)
	e.Wake()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Wait did not unblock on wake")
	}
}

func TestEvents_WaitHonorsContext(t *testing.T) {
	e := NewEvents()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Wait(ctx)
	}()

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Wait did not unblock on cancel")
	}
}
