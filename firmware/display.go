//go:build tinygo

package main

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/ssd1306"

	"github.com/itohio/gotherm/pkg/frame"
)

// oled drives the SSD1306 through the tinygo driver while keeping the
// page buffer rendering in pkg/frame.
type oled struct {
	dev ssd1306.Device
}

func newOLED() *oled {
	machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       PIN_SDA,
		SCL:       PIN_SCL,
	})
	// The display needs a moment after a cold reboot before it acks.
	time.Sleep(100 * time.Millisecond)
	return &oled{dev: ssd1306.NewI2C(machine.I2C0)}
}

func (o *oled) Init() error {
	o.dev.Configure(ssd1306.Config{
		Width:    frame.Width,
		Height:   frame.Height,
		Address:  OLED_ADDRESS,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	o.dev.ClearDisplay()
	return nil
}

func (o *oled) Render(buf []byte) error {
	if err := o.dev.SetBuffer(buf); err != nil {
		return err
	}
	return o.dev.Display()
}
