// Package periphio implements the hardware interfaces on a Linux SBC
// using the periph.io stack: an SSD1306 over I2C, an ADS1115 ADC for the
// temperature sensor and plain GPIOs for the LED and button.
package periphio

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"github.com/itohio/gotherm/pkg/frame"
	"github.com/itohio/gotherm/pkg/hal"
)

// Config selects the bus and pins of a wired-up board.
type Config struct {
	// I2CBus is the bus name for i2creg, empty for the first available.
	I2CBus string
	// LEDPin and ButtonPin are gpioreg names, e.g. "GPIO17".
	LEDPin    string
	ButtonPin string
	// ADCSampleRate is the ADS1115 conversion rate.
	ADCSampleRate physic.Frequency
}

// DefaultConfig matches a Raspberry Pi with the common wiring.
func DefaultConfig() Config {
	return Config{
		LEDPin:        "GPIO17",
		ButtonPin:     "GPIO27",
		ADCSampleRate: 8 * physic.Hertz,
	}
}

// Backend owns the opened hardware and hands out the interface views.
type Backend struct {
	bus     i2c.BusCloser
	display *displayDev
	sensor  *adcSensor
	led     *ledIndicator
	button  *edgeButton
}

// Open initializes the periph host, opens the bus and claims the pins.
// On any failure everything already opened is released.
func Open(cfg Config) (*Backend, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", cfg.I2CBus, err)
	}

	b := &Backend{bus: bus}

	opts := ssd1306.DefaultOpts
	opts.W = frame.Width
	opts.H = frame.Height
	opts.Sequential = true
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("ssd1306: %w", err)
	}
	b.display = &displayDev{dev: dev}

	adc, err := ads1x15.NewADS1115(bus, &ads1x15.DefaultOpts)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("ads1115: %w", err)
	}
	rate := cfg.ADCSampleRate
	if rate == 0 {
		rate = DefaultConfig().ADCSampleRate
	}
	pin, err := adc.PinForChannel(ads1x15.Channel0, 3300*physic.MilliVolt, rate, ads1x15.SaveEnergy)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("ads1115 channel 0: %w", err)
	}
	b.sensor = &adcSensor{pin: pin}

	led := gpioreg.ByName(cfg.LEDPin)
	if led == nil {
		b.Close()
		return nil, fmt.Errorf("led pin %q not found", cfg.LEDPin)
	}
	if err := led.Out(gpio.Low); err != nil {
		b.Close()
		return nil, fmt.Errorf("led pin %q: %w", cfg.LEDPin, err)
	}
	b.led = &ledIndicator{pin: led}

	btn := gpioreg.ByName(cfg.ButtonPin)
	if btn == nil {
		b.Close()
		return nil, fmt.Errorf("button pin %q not found", cfg.ButtonPin)
	}
	eb, err := newEdgeButton(btn)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("button pin %q: %w", cfg.ButtonPin, err)
	}
	b.button = eb

	return b, nil
}

// Display returns the SSD1306 view.
func (b *Backend) Display() hal.Display { return b.display }

// Sensor returns the ADC view.
func (b *Backend) Sensor() hal.Sensor { return b.sensor }

// Indicator returns the LED view.
func (b *Backend) Indicator() hal.Indicator { return b.led }

// Button returns the GPIO button view.
func (b *Backend) Button() hal.Button { return b.button }

// Close releases the pins and the bus.
func (b *Backend) Close() error {
	if b.button != nil {
		b.button.halt()
	}
	if b.led != nil {
		_ = b.led.pin.Out(gpio.Low)
	}
	if b.bus != nil {
		return b.bus.Close()
	}
	return nil
}
