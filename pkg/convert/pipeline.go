package convert

import (
	"log"
	"time"

	"github.com/itohio/gotherm/pkg/config"
	"github.com/itohio/gotherm/pkg/device"
	"github.com/itohio/gotherm/pkg/filter"
	"github.com/itohio/gotherm/pkg/frame"
)

// Measurement is a fully processed telemetry record with physical values.
// FilteredC and IndicatorOn are recomputed host-side from the raw counts so
// the host view works from the same math as the device.
type Measurement struct {
	Timestamp   time.Time
	Raw         uint16
	Voltage     float32    // Sensed diode voltage (V)
	RawC        float32    // Single-sample temperature (C)
	FilteredC   float32    // Moving-average temperature (C)
	Unit        frame.Unit // Display unit reported by the device
	IndicatorOn bool       // FilteredC below the configured threshold
}

// Pipeline is a function type that converts a Reading channel to a
// Measurement channel.
type Pipeline func(in <-chan device.Reading) <-chan Measurement

// NewPipeline creates a pipeline that converts raw telemetry to
// Measurements, applying the moving-average filter along the way.
func NewPipeline(cfg *config.Config, bufSize int) Pipeline {
	if bufSize <= 0 {
		bufSize = 100
	}

	return func(in <-chan device.Reading) <-chan Measurement {
		out := make(chan Measurement, bufSize)

		go func() {
			defer close(out)

			window := filter.New(cfg.Sampling.FilterWindow)
			for raw := range in {
				m := convertReading(raw, cfg, window)

				select {
				case out <- m:
				case <-time.After(time.Second):
					log.Printf("Pipeline output channel full, dropping measurement")
				}
			}
		}()

		return out
	}
}

// convertReading converts a Reading to a Measurement using configuration,
// pushing the single-sample temperature through the shared filter window.
func convertReading(r device.Reading, cfg *config.Config, window *filter.Window) Measurement {
	v := Voltage(r.Raw, float32(cfg.ADC.VRef), cfg.ADC.FullScale())
	rawC := Celsius(v, float32(cfg.Calibration.OffsetV), float32(cfg.Calibration.SlopeVPerC))
	filtered := window.Push(rawC)

	return Measurement{
		Timestamp:   r.Timestamp,
		Raw:         r.Raw,
		Voltage:     v,
		RawC:        rawC,
		FilteredC:   filtered,
		Unit:        r.Unit,
		IndicatorOn: filtered < float32(cfg.Indicator.ThresholdC),
	}
}

// DisplayTemperature returns the measurement's smoothed temperature in the
// device's selected display unit.
func (m Measurement) DisplayTemperature() float32 {
	if m.Unit == frame.Fahrenheit {
		return Fahrenheit(m.FilteredC)
	}
	return m.FilteredC
}
