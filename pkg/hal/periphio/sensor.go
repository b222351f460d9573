package periphio

import (
	"log"

	"periph.io/x/devices/v3/ads1x15"

	"github.com/itohio/gotherm/pkg/hal"
)

// adcSensor reads the sensor voltage through an ADS1115 single-ended
// channel. The 15 significant bits of a positive conversion are shifted
// down to the 12-bit scale the calibration expects.
type adcSensor struct {
	pin ads1x15.PinADC
}

var _ hal.Sensor = (*adcSensor)(nil)

func (s *adcSensor) ReadRaw() uint16 {
	sample, err := s.pin.Read()
	if err != nil {
		// A failed conversion reads as zero; the moving average absorbs
		// the occasional dropout.
		log.Printf("adc read failed: %v", err)
		return 0
	}
	raw := sample.Raw
	if raw < 0 {
		raw = 0
	}
	return uint16(raw >> 3)
}
