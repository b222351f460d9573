package device

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/itohio/gotherm/pkg/frame"
)

const (
	// DefaultBaudRate is the firmware's UART rate.
	DefaultBaudRate = 115200
	// DefaultBufferSize is the default size for the readings channel buffer.
	DefaultBufferSize = 100

	// maxRaw is the largest valid 12-bit ADC count the firmware can emit.
	maxRaw = 4095
)

// Reading is one telemetry record from the device: the raw sample it took
// plus the display unit and indicator state it derived at that instant.
type Reading struct {
	Timestamp   time.Time
	Raw         uint16     // 12-bit ADC reading (0-4095)
	Unit        frame.Unit // Display unit currently selected on the device
	IndicatorOn bool       // Under-temperature LED state
}

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial represents a connection to the monitor MCU.
type Serial struct {
	port     string
	baudRate int
	bufSize  int

	conn      serial.Port
	readings  chan Reading
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
}

// New creates a new Device instance with the specified port, baud rate, and
// buffer size.
func New(port string, baudRate int, bufSize int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Serial{
		port:      port,
		baudRate:  baudRate,
		bufSize:   bufSize,
		readings:  make(chan Reading, bufSize),
		ctx:       ctx,
		cancel:    cancel,
		connected: false,
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Connect connects to the serial port and starts reading telemetry.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}

	mode := &serial.Mode{
		BaudRate: d.baudRate,
	}

	port, err := serial.Open(d.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	d.conn = port
	d.connected = true

	// Start reading telemetry in a goroutine
	go d.readLines()

	return nil
}

// Close closes the connection and stops reading telemetry.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	// Cancel context to stop reading goroutine
	d.cancel()

	// Close serial port
	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			log.Printf("Error closing serial port: %v", err)
		}
		d.conn = nil
	}

	d.connected = false

	// Close readings channel
	close(d.readings)

	return nil
}

// Readings returns the channel for reading telemetry.
func (d *Serial) Readings() <-chan Reading {
	return d.readings
}

// PressUnit sends a unit-toggle request to the MCU. The firmware treats it
// like a debounced button press.
func (d *Serial) PressUnit() error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.connected {
		return fmt.Errorf("not connected")
	}

	if _, err := d.conn.Write([]byte("U\n")); err != nil {
		return fmt.Errorf("failed to send unit toggle: %w", err)
	}

	return nil
}

// IsConnected returns whether the device is currently connected.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// readLines reads lines from the serial port and parses them into Readings.
func (d *Serial) readLines() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic in readLines: %v", r)
		}
	}()

	scanner := bufio.NewScanner(d.conn)
	for {
		select {
		case <-d.ctx.Done():
			return
		default:
			if !scanner.Scan() {
				// Scanner stopped (EOF or error)
				if err := scanner.Err(); err != nil {
					if err != io.EOF {
						log.Printf("Error reading from serial port: %v", err)
					}
				}
				return
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			reading, err := parseLine(line)
			if err != nil {
				log.Printf("Failed to parse line '%s': %v", line, err)
				continue
			}

			// Send reading to channel (non-blocking)
			select {
			case d.readings <- reading:
			case <-d.ctx.Done():
				return
			default:
				// Channel full, log and skip
				log.Printf("Readings channel full, dropping reading")
			}
		}
	}
}

// parseLine parses a telemetry line from the MCU into a Reading.
// Format: unix_micros,raw,unit,indicator
// Example: 1234567890123,2048,C,1
func parseLine(line string) (Reading, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 4 {
		return Reading{}, fmt.Errorf("invalid line format: expected 4 comma-separated values, got %d", len(parts))
	}

	// Parse timestamp (unix microseconds)
	timestampMicros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Reading{}, fmt.Errorf("invalid timestamp: %w", err)
	}
	timestamp := time.Unix(0, timestampMicros*1000) // Convert microseconds to nanoseconds

	// Parse raw sample (12-bit ADC)
	raw, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil {
		return Reading{}, fmt.Errorf("invalid raw sample: %w", err)
	}
	if raw > maxRaw {
		return Reading{}, fmt.Errorf("raw sample out of range: %d (max %d)", raw, maxRaw)
	}

	// Parse display unit
	unit, ok := frame.ParseUnit(parts[2])
	if !ok {
		return Reading{}, fmt.Errorf("invalid unit: %q", parts[2])
	}

	// Parse indicator state (single digit)
	var indicator bool
	switch parts[3] {
	case "0":
		indicator = false
	case "1":
		indicator = true
	default:
		return Reading{}, fmt.Errorf("invalid indicator state: %q", parts[3])
	}

	return Reading{
		Timestamp:   timestamp,
		Raw:         uint16(raw),
		Unit:        unit,
		IndicatorOn: indicator,
	}, nil
}
