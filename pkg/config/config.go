package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the host application configuration. The firmware does
// not read this; its constants are fixed at build time. Host tools load the
// file once at startup; calibration is not changed at runtime.
type Config struct {
	Serial      SerialConfig      `yaml:"serial"`
	ADC         ADCConfig         `yaml:"adc"`
	Calibration CalibrationConfig `yaml:"calibration"`
	Sampling    SamplingConfig    `yaml:"sampling"`
	Button      ButtonConfig      `yaml:"button"`
	Display     DisplayConfig     `yaml:"display"`
	Indicator   IndicatorConfig   `yaml:"indicator"`
	Mock        MockConfig        `yaml:"mock"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port string `yaml:"port"`
}

// ADCConfig describes the analog input.
type ADCConfig struct {
	VRef           float64 `yaml:"vref"`            // Reference voltage (V)
	ResolutionBits int     `yaml:"resolution_bits"` // 12-bit = 0-4095
}

// FullScale returns the number of representable ADC counts.
func (a ADCConfig) FullScale() int {
	return 1 << a.ResolutionBits
}

// CalibrationConfig holds the two-point linear diode calibration:
// temperature = (voltage - offset) / slope.
type CalibrationConfig struct {
	OffsetV    float64 `yaml:"offset_v"`      // Diode voltage at 0 C (V)
	SlopeVPerC float64 `yaml:"slope_v_per_c"` // Diode slope (V/C), negative
}

// SamplingConfig contains sampling and smoothing parameters.
type SamplingConfig struct {
	Period       time.Duration `yaml:"period"`        // Sensor sampling period
	FilterWindow int           `yaml:"filter_window"` // Moving average window size
}

// ButtonConfig contains the unit-toggle button parameters.
type ButtonConfig struct {
	Debounce time.Duration `yaml:"debounce"` // Lockout after a falling edge
}

// DisplayConfig describes the attached display.
type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// IndicatorConfig contains the LED threshold.
type IndicatorConfig struct {
	ThresholdC float64 `yaml:"threshold_c"` // LED on while filtered temp is below this
}

// MockConfig contains mock device configuration.
type MockConfig struct {
	AmbientC    float64       `yaml:"ambient_c"`    // Baseline simulated temperature (C)
	NoiseC      float64       `yaml:"noise_c"`      // Noise amplitude (C)
	DriftC      float64       `yaml:"drift_c"`      // Slow drift amplitude (C)
	DriftPeriod time.Duration `yaml:"drift_period"` // Period of the drift cycle
	SampleRate  time.Duration `yaml:"sample_rate"`  // Telemetry rate
}

// Default returns a default configuration matching the reference hardware.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port: "/dev/ttyACM0",
		},
		ADC: ADCConfig{
			VRef:           3.3,
			ResolutionBits: 12,
		},
		Calibration: CalibrationConfig{
			OffsetV:    0.6264,
			SlopeVPerC: -0.0021,
		},
		Sampling: SamplingConfig{
			Period:       500 * time.Millisecond,
			FilterWindow: 40,
		},
		Button: ButtonConfig{
			Debounce: 200 * time.Millisecond,
		},
		Display: DisplayConfig{
			Width:  128,
			Height: 32,
		},
		Indicator: IndicatorConfig{
			ThresholdC: 40.0,
		},
		Mock: MockConfig{
			AmbientC:    26.0,
			NoiseC:      0.4,
			DriftC:      8.0,
			DriftPeriod: 2 * time.Minute,
			SampleRate:  500 * time.Millisecond,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if
// missing. Zero is not a meaningful value for any of these fields, so zero
// means the field was absent from the file.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}

	if c.ADC.VRef == 0 {
		c.ADC.VRef = def.ADC.VRef
	}
	if c.ADC.ResolutionBits == 0 {
		c.ADC.ResolutionBits = def.ADC.ResolutionBits
	}

	if c.Calibration.OffsetV == 0 {
		c.Calibration.OffsetV = def.Calibration.OffsetV
	}
	if c.Calibration.SlopeVPerC == 0 {
		c.Calibration.SlopeVPerC = def.Calibration.SlopeVPerC
	}

	if c.Sampling.Period == 0 {
		c.Sampling.Period = def.Sampling.Period
	}
	if c.Sampling.FilterWindow == 0 {
		c.Sampling.FilterWindow = def.Sampling.FilterWindow
	}

	if c.Button.Debounce == 0 {
		c.Button.Debounce = def.Button.Debounce
	}

	if c.Display.Width == 0 {
		c.Display.Width = def.Display.Width
	}
	if c.Display.Height == 0 {
		c.Display.Height = def.Display.Height
	}

	if c.Indicator.ThresholdC == 0 {
		c.Indicator.ThresholdC = def.Indicator.ThresholdC
	}

	if c.Mock.AmbientC == 0 {
		c.Mock.AmbientC = def.Mock.AmbientC
	}
	if c.Mock.DriftPeriod == 0 {
		c.Mock.DriftPeriod = def.Mock.DriftPeriod
	}
	if c.Mock.SampleRate == 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}
}
