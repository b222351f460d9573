package device

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chewxy/math32"

	"github.com/itohio/gotherm/pkg/config"
	"github.com/itohio/gotherm/pkg/filter"
	"github.com/itohio/gotherm/pkg/frame"
)

// Mock simulates a monitor device for testing and development. It behaves
// like the firmware: a drifting diode temperature sampled periodically, a
// moving-average filter deciding the indicator, and a display unit that
// toggles on PressUnit.
type Mock struct {
	cfg *config.Config

	readings  chan Reading
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool

	// Simulation state
	startTime time.Time
	unit      frame.Unit
	window    *filter.Window
	indicator bool
}

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)

// NewMock creates a new mocked device instance.
func NewMock(cfg *config.Config) *Mock {
	if cfg == nil {
		cfg = config.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:       cfg,
		readings:  make(chan Reading, DefaultBufferSize),
		ctx:       ctx,
		cancel:    cancel,
		connected: false,
		unit:      frame.Celsius,
		window:    filter.New(cfg.Sampling.FilterWindow),
	}
}

// Connect simulates connecting to the device.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}

	m.connected = true
	m.startTime = time.Now()
	m.window.Reset()

	// Start generating telemetry
	go m.generateReadings()

	return nil
}

// Close stops the mocked device.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	m.cancel()
	m.connected = false
	close(m.readings)

	return nil
}

// Readings returns the channel for reading telemetry.
func (m *Mock) Readings() <-chan Reading {
	return m.readings
}

// PressUnit toggles the simulated display unit.
func (m *Mock) PressUnit() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return fmt.Errorf("not connected")
	}

	m.unit = m.unit.Toggle()

	return nil
}

// IsConnected returns whether the device is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// Unit returns the currently selected simulated display unit.
func (m *Mock) Unit() frame.Unit {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.unit
}

// generateReadings generates simulated telemetry.
func (m *Mock) generateReadings() {
	ticker := time.NewTicker(m.cfg.Mock.SampleRate)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			reading := m.generateReading()
			select {
			case m.readings <- reading:
			case <-m.ctx.Done():
				return
			default:
				// Channel full, skip
			}
		}
	}
}

// generateReading generates a single simulated telemetry record.
func (m *Mock) generateReading() Reading {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	elapsed := float32(now.Sub(m.startTime).Seconds())

	// Slow drift plus two incommensurate noise tones, like a real diode
	// sitting in a drafty room.
	drift := float32(m.cfg.Mock.DriftC) *
		math32.Sin(2*math32.Pi*elapsed/float32(m.cfg.Mock.DriftPeriod.Seconds()))
	noise := float32(m.cfg.Mock.NoiseC) * 0.5 *
		(math32.Sin(elapsed*7.3) + math32.Cos(elapsed*13.1))
	tempC := float32(m.cfg.Mock.AmbientC) + drift + noise

	// Invert the calibration to produce the ADC count the firmware would see.
	v := float32(m.cfg.Calibration.OffsetV) + float32(m.cfg.Calibration.SlopeVPerC)*tempC
	counts := v / float32(m.cfg.ADC.VRef) * float32(m.cfg.ADC.FullScale())
	if counts < 0 {
		counts = 0
	} else if counts > maxRaw {
		counts = maxRaw
	}
	raw := uint16(counts)

	// The simulated firmware smooths and drives its LED exactly like the
	// real one does.
	filtered := m.window.Push(tempC)
	m.indicator = filtered < float32(m.cfg.Indicator.ThresholdC)

	return Reading{
		Timestamp:   now,
		Raw:         raw,
		Unit:        m.unit,
		IndicatorOn: m.indicator,
	}
}
