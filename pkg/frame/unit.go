package frame

// Unit selects the temperature scale shown on the display.
// It is mutated only by the control loop's button handling.
type Unit uint8

const (
	Celsius Unit = iota
	Fahrenheit
)

// Toggle returns the other unit.
func (u Unit) Toggle() Unit {
	if u == Celsius {
		return Fahrenheit
	}
	return Celsius
}

// String returns the display symbol, "C" or "F".
func (u Unit) String() string {
	if u == Fahrenheit {
		return "F"
	}
	return "C"
}

// ParseUnit parses a display symbol as emitted in telemetry lines.
func ParseUnit(s string) (Unit, bool) {
	switch s {
	case "C":
		return Celsius, true
	case "F":
		return Fahrenheit, true
	}
	return Celsius, false
}
