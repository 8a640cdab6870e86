package sensor

import (
	"context"
	"fmt"
	"math"
	"time"
)

// SCD30 command words. The sensor speaks in 2-byte words, each followed on
// the wire by a CRC-8 checksum byte.
const (
	cmdContinuousMeasurement   uint16 = 0x0010
	cmdStopMeasurement         uint16 = 0x0104
	cmdSetMeasurementInterval  uint16 = 0x4600
	cmdGetDataReady            uint16 = 0x0202
	cmdReadMeasurement         uint16 = 0x0300
	cmdAutoSelfCalibration     uint16 = 0x5306
	cmdSetTemperatureOffset    uint16 = 0x5403
	cmdSetAltitudeCompensation uint16 = 0x5102
	cmdReadSerial              uint16 = 0xD033
)

// crcPolynomial is x^8 + x^5 + x^4 + 1, per the SCD30 interface description.
const crcPolynomial = 0x31

// measurementWords is the read-measurement response size: three big-endian
// IEEE-754 floats, two words each.
const measurementWords = 6

// crc8 computes the checksum of one 2-byte word (poly 0x31, init 0xFF, MSB
// first). Sensirion's documented check value: crc8(0xBEEF) == 0x92.
func crc8(word uint16) byte {
	rem := byte(0xFF)
	for _, b := range []byte{byte(word >> 8), byte(word)} {
		rem ^= b
		for i := 0; i < 8; i++ {
			if rem&0x80 != 0 {
				rem = rem<<1 ^ crcPolynomial
			} else {
				rem <<= 1
			}
		}
	}
	return rem
}

// appendWord appends a word followed by its checksum.
func appendWord(dst []byte, w uint16) []byte {
	return append(dst, byte(w>>8), byte(w), crc8(w))
}

// EncodeCommand frames a command word with optional argument words. The
// command itself carries no checksum; every argument does.
func EncodeCommand(cmd uint16, args ...uint16) []byte {
	out := []byte{byte(cmd >> 8), byte(cmd)}
	for _, a := range args {
		out = appendWord(out, a)
	}
	return out
}

// DecodeWords validates and unpacks a response: 3-byte groups of word-high,
// word-low, crc.
func DecodeWords(raw []byte) ([]uint16, error) {
	if len(raw)%3 != 0 {
		return nil, fmt.Errorf("scd30: response length %d not a multiple of 3", len(raw))
	}
	words := make([]uint16, 0, len(raw)/3)
	for i := 0; i < len(raw); i += 3 {
		w := uint16(raw[i])<<8 | uint16(raw[i+1])
		if got, want := raw[i+2], crc8(w); got != want {
			return nil, fmt.Errorf("scd30: crc mismatch at word %d: got %#02x want %#02x", i/3, got, want)
		}
		words = append(words, w)
	}
	return words, nil
}

// wordsToFloat reassembles two words into a big-endian IEEE-754 float.
func wordsToFloat(hi, lo uint16) float64 {
	return float64(math.Float32frombits(uint32(hi)<<16 | uint32(lo)))
}

// DecodeMeasurement converts the 6-word read-measurement response into a
// Reading stamped with ts. Word order: CO2 ppm, temperature C, humidity %RH.
func DecodeMeasurement(words []uint16, ts int64) (Reading, error) {
	if len(words) != measurementWords {
		return Reading{}, fmt.Errorf("scd30: measurement needs %d words, got %d", measurementWords, len(words))
	}
	return Reading{
		CO2:          wordsToFloat(words[0], words[1]),
		TemperatureC: wordsToFloat(words[2], words[3]),
		HumidityRH:   wordsToFloat(words[4], words[5]),
		Time:         ts,
	}, nil
}

// Bus is the transport an SCD30 sits on. Tx writes the framed command and
// reads readLen response bytes (zero for set-only commands). A real
// implementation wraps an I2C bus at address 0x61.
type Bus interface {
	Tx(w []byte, readLen int) ([]byte, error)
}

// SCD30 is a Source speaking the Sensirion SCD30 protocol over a Bus.
type SCD30 struct {
	bus Bus
	now func() int64
}

func NewSCD30(bus Bus) *SCD30 {
	return &SCD30{bus: bus, now: func() int64 { return time.Now().Unix() }}
}

func (s *SCD30) Name() string { return "scd30" }

// StartContinuous begins periodic measurement, optionally compensating for
// ambient pressure in mBar (0 disables compensation).
func (s *SCD30) StartContinuous(pressureMBar uint16) error {
	if pressureMBar != 0 && (pressureMBar < 700 || pressureMBar > 1400) {
		return fmt.Errorf("scd30: pressure %d outside 700-1400 mBar", pressureMBar)
	}
	_, err := s.bus.Tx(EncodeCommand(cmdContinuousMeasurement, pressureMBar), 0)
	return err
}

// SetInterval sets the measurement interval in seconds (2..1800).
func (s *SCD30) SetInterval(seconds uint16) error {
	if seconds < 2 || seconds > 1800 {
		return fmt.Errorf("scd30: interval %d outside 2-1800s", seconds)
	}
	_, err := s.bus.Tx(EncodeCommand(cmdSetMeasurementInterval, seconds), 0)
	return err
}

// DataReady reports whether a measurement is waiting to be read.
func (s *SCD30) DataReady() (bool, error) {
	raw, err := s.bus.Tx(EncodeCommand(cmdGetDataReady), 3)
	if err != nil {
		return false, err
	}
	words, err := DecodeWords(raw)
	if err != nil {
		return false, err
	}
	if len(words) != 1 {
		return false, fmt.Errorf("scd30: data-ready response has %d words", len(words))
	}
	return words[0] != 0, nil
}

// Read fetches one measurement. It does not wait for data-ready; callers on
// a sampling ticker poll DataReady first or simply tolerate the error.
func (s *SCD30) Read(ctx context.Context) (Reading, error) {
	if err := ctx.Err(); err != nil {
		return Reading{}, err
	}
	raw, err := s.bus.Tx(EncodeCommand(cmdReadMeasurement), measurementWords*3)
	if err != nil {
		return Reading{}, fmt.Errorf("scd30: read measurement: %w", err)
	}
	words, err := DecodeWords(raw)
	if err != nil {
		return Reading{}, err
	}
	return DecodeMeasurement(words, s.now())
}
