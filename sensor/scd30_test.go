package sensor

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRC8KnownValue(t *testing.T) {
	// Check value from the Sensirion interface description.
	assert.Equal(t, byte(0x92), crc8(0xBEEF))
	assert.Equal(t, byte(0x81), crc8(0x0000))
}

func TestEncodeCommand(t *testing.T) {
	// Bare command: just the two command bytes.
	assert.Equal(t, []byte{0x03, 0x00}, EncodeCommand(cmdReadMeasurement))

	// With an argument the argument carries its checksum.
	got := EncodeCommand(cmdSetMeasurementInterval, 2)
	require.Len(t, got, 5)
	assert.Equal(t, []byte{0x46, 0x00, 0x00, 0x02}, got[:4])
	assert.Equal(t, crc8(2), got[4])
}

func TestDecodeWordsRoundTrip(t *testing.T) {
	raw := appendWord(nil, 0x1234)
	raw = appendWord(raw, 0xBEEF)

	words, err := DecodeWords(raw)
	require.NoError(t, err)
	assert.Equal(t, []uint16{0x1234, 0xBEEF}, words)
}

func TestDecodeWordsBadCRC(t *testing.T) {
	raw := appendWord(nil, 0x1234)
	raw[2] ^= 0xFF
	_, err := DecodeWords(raw)
	assert.ErrorContains(t, err, "crc mismatch")

	_, err = DecodeWords([]byte{0x00, 0x01})
	assert.ErrorContains(t, err, "multiple of 3")
}

func floatWords(v float32) (uint16, uint16) {
	bits := math.Float32bits(v)
	return uint16(bits >> 16), uint16(bits)
}

func TestDecodeMeasurement(t *testing.T) {
	co2Hi, co2Lo := floatWords(450)
	tHi, tLo := floatWords(21.5)
	hHi, hLo := floatWords(40)

	r, err := DecodeMeasurement([]uint16{co2Hi, co2Lo, tHi, tLo, hHi, hLo}, 1234)
	require.NoError(t, err)
	assert.InDelta(t, 450.0, r.CO2, 0.001)
	assert.InDelta(t, 21.5, r.TemperatureC, 0.001)
	assert.InDelta(t, 40.0, r.HumidityRH, 0.001)
	assert.Equal(t, int64(1234), r.Time)

	_, err = DecodeMeasurement([]uint16{co2Hi, co2Lo}, 0)
	assert.Error(t, err)
}

// fakeBus answers read commands from a canned response table.
type fakeBus struct {
	responses map[uint16][]byte
	writes    [][]byte
}

func (b *fakeBus) Tx(w []byte, readLen int) ([]byte, error) {
	b.writes = append(b.writes, w)
	if readLen == 0 {
		return nil, nil
	}
	cmd := uint16(w[0])<<8 | uint16(w[1])
	return b.responses[cmd], nil
}

func TestSCD30ReadMeasurement(t *testing.T) {
	co2Hi, co2Lo := floatWords(612)
	tHi, tLo := floatWords(22.25)
	hHi, hLo := floatWords(38.5)

	var resp []byte
	for _, w := range []uint16{co2Hi, co2Lo, tHi, tLo, hHi, hLo} {
		resp = appendWord(resp, w)
	}
	bus := &fakeBus{responses: map[uint16][]byte{cmdReadMeasurement: resp}}

	dev := NewSCD30(bus)
	dev.now = func() int64 { return 99 }

	r, err := dev.Read(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 612.0, r.CO2, 0.001)
	assert.InDelta(t, 22.25, r.TemperatureC, 0.001)
	assert.InDelta(t, 38.5, r.HumidityRH, 0.001)
	assert.Equal(t, int64(99), r.Time)
}

func TestSCD30DataReady(t *testing.T) {
	bus := &fakeBus{responses: map[uint16][]byte{
		cmdGetDataReady: appendWord(nil, 1),
	}}
	dev := NewSCD30(bus)

	ready, err := dev.DataReady()
	require.NoError(t, err)
	assert.True(t, ready)

	bus.responses[cmdGetDataReady] = appendWord(nil, 0)
	ready, err = dev.DataReady()
	require.NoError(t, err)
	assert.False(t, ready)
}

func TestSCD30Validation(t *testing.T) {
	dev := NewSCD30(&fakeBus{})
	assert.Error(t, dev.SetInterval(1))
	assert.Error(t, dev.SetInterval(1801))
	assert.NoError(t, dev.SetInterval(2))
	assert.Error(t, dev.StartContinuous(500))
	assert.NoError(t, dev.StartContinuous(0))
	assert.NoError(t, dev.StartContinuous(1013))
}
