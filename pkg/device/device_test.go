package device

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/gotherm/pkg/frame"
)

func TestParseLine_Valid(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Reading
	}{
		{
			name: "celsius indicator on",
			line: "1234567890123,2048,C,1",
			want: Reading{
				Timestamp:   time.Unix(0, 1234567890123*1000),
				Raw:         2048,
				Unit:        frame.Celsius,
				IndicatorOn: true,
			},
		},
		{
			name: "fahrenheit indicator off",
			line: "1000,4095,F,0",
			want: Reading{
				Timestamp:   time.Unix(0, 1000*1000),
				Raw:         4095,
				Unit:        frame.Fahrenheit,
				IndicatorOn: false,
			},
		},
		{
			name: "zero raw",
			line: "42,0,C,0",
			want: Reading{
				Timestamp:   time.Unix(0, 42*1000),
				Raw:         0,
				Unit:        frame.Celsius,
				IndicatorOn: false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLine_Invalid(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "too few fields", line: "123,2048,C"},
		{name: "too many fields", line: "123,2048,C,1,extra"},
		{name: "bad timestamp", line: "abc,2048,C,1"},
		{name: "bad raw", line: "123,xyz,C,1"},
		{name: "raw out of range", line: "123,4096,C,1"},
		{name: "bad unit", line: "123,2048,K,1"},
		{name: "bad indicator", line: "123,2048,C,2"},
		{name: "empty", line: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseLine(tt.line)
			assert.Error(t, err)
		})
	}
}

func TestSerial_NotConnected(t *testing.T) {
	d := New("/dev/null-port", 0, 0)

	assert.False(t, d.IsConnected())
	assert.Error(t, d.PressUnit(), "PressUnit must fail while disconnected")
	assert.NoError(t, d.Close(), "closing a disconnected device is a no-op")
}

func TestNew_Defaults(t *testing.T) {
	d := New("COM3", 0, 0)
	assert.Equal(t, DefaultBaudRate, d.baudRate)
	assert.Equal(t, DefaultBufferSize, d.bufSize)
}
