package device

// Device defines the interface for monitor devices (real or mocked).
type Device interface {
	Connect() error
	Close() error
	Readings() <-chan Reading
	// PressUnit requests a display unit toggle, equivalent to one debounced
	// press of the physical button.
	PressUnit() error
	IsConnected() bool
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)
