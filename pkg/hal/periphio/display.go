package periphio

import (
	"fmt"

	"periph.io/x/devices/v3/ssd1306"

	"github.com/itohio/gotherm/pkg/frame"
	"github.com/itohio/gotherm/pkg/hal"
)

// displayDev adapts the periph SSD1306 driver to the page-buffer contract.
// The driver's raw Write wants exactly one full frame of vertically packed
// pages, which is the frame.Buffer layout.
type displayDev struct {
	dev *ssd1306.Dev
}

var _ hal.Display = (*displayDev)(nil)

// Init clears the panel. The controller itself was configured by NewI2C.
func (d *displayDev) Init() error {
	var blank frame.Buffer
	return d.Render(blank.Bytes())
}

func (d *displayDev) Render(buf []byte) error {
	if len(buf) != frame.BufLen {
		return fmt.Errorf("frame is %d bytes, want %d", len(buf), frame.BufLen)
	}
	if _, err := d.dev.Write(buf); err != nil {
		return fmt.Errorf("ssd1306 write: %w", err)
	}
	return nil
}
