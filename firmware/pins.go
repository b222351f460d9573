//go:build tinygo

package main

import "machine"

const (
	// Sampling configuration
	SAMPLE_PERIOD_MS = 500 // Sample cycle period in milliseconds
	FILTER_WINDOW    = 40  // Moving average window length
	DEBOUNCE_MS      = 200 // Button re-arm delay in milliseconds

	// ADC configuration
	ADC_REFERENCE_MV = 3300 // Reference voltage in millivolts (3.3V)
	ADC_RESOLUTION   = 12   // ADC resolution in bits (12-bit = 0-4095)

	// Calibration for the analog temperature sensor on ADC0
	SENSOR_OFFSET_V      = 0.6264  // Sensor output at 0 degrees C
	SENSOR_SLOPE_V_PER_C = -0.0021 // Volts per degree C

	// Indicator threshold: LED on while filtered temperature is below this
	LED_THRESHOLD_C = 40.0

	// Pins
	PIN_SENSOR = machine.GP26 // ADC0
	PIN_LED    = machine.GP11
	PIN_BUTTON = machine.GP10

	// I2C display
	PIN_SDA      = machine.GP4
	PIN_SCL      = machine.GP5
	OLED_ADDRESS = 0x3C

	// Serial configuration
	// Format "unix_micros,raw,unit,indicator\n" is at most ~25 bytes.
	// 2 lines/sec is far below what 115200 baud carries.
	UART_BAUD_RATE = 115200
)
