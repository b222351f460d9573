// Package screen provides a custom Fyne widget mirroring the device's
// OLED panel: the same page buffer the firmware renders, scaled up, with
// the threshold LED drawn beneath it.
package screen

import (
	"sync"

	"fyne.io/fyne/v2/widget"

	"github.com/itohio/gotherm/pkg/frame"
)

// ScreenWidget is a custom Fyne widget that displays the 128x32 panel
// content plus the indicator LED state.
type ScreenWidget struct {
	widget.BaseWidget

	// Data (protected by mu)
	mu          sync.RWMutex
	buf         frame.Buffer
	indicatorOn bool
	connected   bool
}

// New creates a new ScreenWidget instance showing a blank panel.
func New() *ScreenWidget {
	s := &ScreenWidget{}
	s.ExtendBaseWidget(s)
	s.Refresh()
	return s
}

// UpdateStatus rebuilds the panel content from the given status.
// This should be called from the measurement callback using fyne.Do().
func (s *ScreenWidget) UpdateStatus(st frame.Status, indicatorOn bool) {
	s.mu.Lock()
	frame.Build(&s.buf, st)
	s.indicatorOn = indicatorOn
	s.connected = true
	s.mu.Unlock()

	s.Refresh()
}

// Clear blanks the panel, shown while no device is connected.
func (s *ScreenWidget) Clear() {
	s.mu.Lock()
	s.buf.Clear()
	s.indicatorOn = false
	s.connected = false
	s.mu.Unlock()

	s.Refresh()
}

// pixelOn reports whether the panel pixel at (x, y) is lit. The buffer is
// page addressed: one byte spans 8 rows, LSB on top.
func (s *ScreenWidget) pixelOn(x, y int) bool {
	if x < 0 || x >= frame.Width || y < 0 || y >= frame.Height {
		return false
	}
	b := s.buf.Bytes()[(y/frame.PageHeight)*frame.Width+x]
	return b&(1<<(y%frame.PageHeight)) != 0
}
