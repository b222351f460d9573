// Package convert turns raw ADC counts into physical values: volts, then
// degrees Celsius through the fixed two-point diode calibration, with
// Fahrenheit as a display-time view. All functions are pure and total; no
// range validation is applied, out-of-range inputs convert like any other
// (the hardware cannot produce them, and extreme results are wanted
// unclamped for bring-up debugging).
package convert

// Reference calibration constants for the 1N4148 diode sensor. Host tools
// take these from configuration; the firmware uses them directly.
const (
	DefaultVRef       float32 = 3.3
	DefaultFullScale  int     = 4096
	DefaultOffsetV    float32 = 0.6264
	DefaultSlopeVPerC float32 = -0.0021
)

// Voltage converts a raw ADC count to volts.
func Voltage(raw uint16, vref float32, fullScale int) float32 {
	return float32(raw) * vref / float32(fullScale)
}

// Celsius converts a sensed voltage to degrees Celsius using the linear
// calibration temperature = (v - offset) / slope.
func Celsius(v, offset, slope float32) float32 {
	return (v - offset) / slope
}

// Fahrenheit converts degrees Celsius to degrees Fahrenheit.
func Fahrenheit(c float32) float32 {
	return c*9.0/5.0 + 32.0
}
