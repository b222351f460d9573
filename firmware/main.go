//go:build tinygo

//go:generate tinygo flash -target=pico

package main

import (
	"context"
	"machine"
	"time"

	"github.com/itohio/gotherm/pkg/app"
	"github.com/itohio/gotherm/pkg/hal"
	"github.com/itohio/gotherm/pkg/input"
	"github.com/itohio/gotherm/pkg/sampler"
)

var (
	uart = machine.Serial

	// Serial buffer for reading command lines
	serialBuffer [8]byte
	serialPos    int
)

// adcSensor reads the analog sensor. The 16-bit left-aligned reading is
// shifted down to the 12-bit scale of the calibration.
type adcSensor struct {
	adc machine.ADC
}

func (s *adcSensor) ReadRaw() uint16 {
	return s.adc.Get() >> 4
}

// ledIndicator drives the threshold LED.
type ledIndicator struct {
	pin machine.Pin
}

func (l *ledIndicator) Set(on bool) {
	l.pin.Set(on)
}

// irqButton exposes the GPIO falling-edge interrupt. Disable detaches the
// interrupt entirely, so bounce edges during the dead time never fire.
type irqButton struct {
	pin machine.Pin
	fn  func()
}

func (b *irqButton) OnFallingEdge(fn func()) {
	b.fn = fn
}

func (b *irqButton) Enable() {
	b.pin.SetInterrupt(machine.PinFalling, b.isr)
}

func (b *irqButton) Disable() {
	b.pin.SetInterrupt(machine.PinFalling, nil)
}

func (b *irqButton) isr(machine.Pin) {
	if b.fn != nil {
		b.fn()
	}
}

var (
	_ hal.Sensor    = (*adcSensor)(nil)
	_ hal.Indicator = (*ledIndicator)(nil)
	_ hal.Button    = (*irqButton)(nil)
)

func main() {
	machine.InitADC()
	PIN_SENSOR.Configure(machine.PinConfig{Mode: machine.PinInput})
	adc := machine.ADC{Pin: PIN_SENSOR}
	adc.Configure(machine.ADCConfig{
		Reference:  ADC_REFERENCE_MV,
		Resolution: ADC_RESOLUTION,
	})

	PIN_LED.Configure(machine.PinConfig{Mode: machine.PinOutput})
	PIN_BUTTON.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	uart.Configure(machine.UARTConfig{BaudRate: UART_BAUD_RATE})

	events := app.NewEvents()
	timers := hal.NewSystemTimers(nil)

	var loop *app.Loop
	sched := sampler.New(
		&adcSensor{adc: adc},
		&ledIndicator{pin: PIN_LED},
		sampler.Params{
			VRef:       float32(ADC_REFERENCE_MV) / 1000,
			FullScale:  1 << ADC_RESOLUTION,
			OffsetV:    SENSOR_OFFSET_V,
			SlopeVPerC: SENSOR_SLOPE_V_PER_C,
			ThresholdC: LED_THRESHOLD_C,
		},
		FILTER_WINDOW,
		func(r sampler.Reading) {
			emitTelemetry(loop, r)
			events.SignalRender()
		},
	)
	loop = app.NewLoop(events, sched, newOLED())

	debouncer := input.New(
		&irqButton{pin: PIN_BUTTON},
		timers,
		DEBOUNCE_MS*time.Millisecond,
		events.SignalPress,
	)
	debouncer.Arm()

	sched.Start(timers, SAMPLE_PERIOD_MS*time.Millisecond)
	go processSerial(events)

	// Never returns on the device.
	loop.Run(context.Background())
}

// emitTelemetry prints one "unix_micros,raw,unit,indicator" line per
// sample cycle.
func emitTelemetry(loop *app.Loop, r sampler.Reading) {
	print(time.Now().UnixNano() / 1000)
	print(",")
	print(r.Raw)
	print(",")
	if loop != nil {
		print(loop.Unit().String())
	} else {
		print("C")
	}
	print(",")
	if r.IndicatorOn {
		print("1")
	} else {
		print("0")
	}
	print("\n")
}

// processSerial accepts "U\n" lines from the host, each one equivalent to
// a debounced button press.
func processSerial(events *app.Events) {
	for {
		if uart.Buffered() == 0 {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		data, err := uart.ReadByte()
		if err != nil {
			continue
		}

		if data == '\n' || data == '\r' {
			if serialPos == 1 && (serialBuffer[0] == 'U' || serialBuffer[0] == 'u') {
				events.SignalPress()
			}
			serialPos = 0
			continue
		}

		if data == ' ' || data == '\t' {
			continue
		}

		if serialPos < len(serialBuffer) {
			serialBuffer[serialPos] = data
			serialPos++
		}
	}
}
