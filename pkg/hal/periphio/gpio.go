package periphio

import (
	"sync/atomic"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/itohio/gotherm/pkg/hal"
)

// ledIndicator drives the threshold LED.
type ledIndicator struct {
	pin gpio.PinIO
}

var _ hal.Indicator = (*ledIndicator)(nil)

func (l *ledIndicator) Set(on bool) {
	_ = l.pin.Out(gpio.Level(on))
}

// edgeButton watches a pulled-up input for falling edges on a dedicated
// goroutine. Enable and Disable gate delivery, standing in for masking
// the GPIO interrupt: edges seen while disabled are discarded.
type edgeButton struct {
	pin     gpio.PinIO
	enabled atomic.Bool
	fn      atomic.Pointer[func()]
	stop    chan struct{}
}

var _ hal.Button = (*edgeButton)(nil)

func newEdgeButton(pin gpio.PinIO) (*edgeButton, error) {
	if err := pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return nil, err
	}
	b := &edgeButton{pin: pin, stop: make(chan struct{})}
	b.enabled.Store(true)
	go b.watch()
	return b, nil
}

func (b *edgeButton) OnFallingEdge(fn func()) {
	b.fn.Store(&fn)
}

func (b *edgeButton) Enable()  { b.enabled.Store(true) }
func (b *edgeButton) Disable() { b.enabled.Store(false) }

func (b *edgeButton) watch() {
	for {
		select {
		case <-b.stop:
			return
		default:
		}
		if !b.pin.WaitForEdge(100 * time.Millisecond) {
			continue
		}
		if !b.enabled.Load() {
			continue
		}
		if fn := b.fn.Load(); fn != nil && *fn != nil {
			(*fn)()
		}
	}
}

func (b *edgeButton) halt() {
	close(b.stop)
	_ = b.pin.Halt()
}
