package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var fallback = Range{Min: 400, Max: 1000}

func TestAxisRangeEmptyHistory(t *testing.T) {
	h := NewHistory(10)
	assert.Equal(t, fallback, axisRange(h, 10, 200, 1, 0, fallback))
}

func TestAxisRangeAllGaps(t *testing.T) {
	h := NewHistory(10)
	h.Append(Gap())
	h.Append(Gap())
	assert.Equal(t, fallback, axisRange(h, 10, 200, 1, 0, fallback))
}

func TestAxisRangeRounding(t *testing.T) {
	h := NewHistory(10)
	h.Append(Candle(600, 1100, 0))

	// 600 floors to 600, minus one padding step = 400.
	// 1100 ceils to 1200, plus zero padding = 1200.
	got := axisRange(h, 10, 200, 1, 0, fallback)
	assert.Equal(t, Range{Min: 400, Max: 1200}, got)
}

func TestAxisRangeSpansEntries(t *testing.T) {
	h := NewHistory(10)
	h.Append(Candle(700, 750, 0))
	h.Append(Gap())
	h.Append(Candle(450, 1350, 60))

	got := axisRange(h, 10, 200, 0, 0, fallback)
	assert.Equal(t, Range{Min: 400, Max: 1400}, got)
}

func TestAxisRangeWindowLimitsScan(t *testing.T) {
	h := NewHistory(10)
	h.Append(Candle(100, 5000, 0)) // outside a window of 1
	h.Append(Candle(600, 800, 60))

	got := axisRange(h, 1, 200, 0, 0, fallback)
	assert.Equal(t, Range{Min: 600, Max: 800}, got)
}

func TestAxisRangeNegativeValues(t *testing.T) {
	h := NewHistory(10)
	h.Append(Candle(-350, -50, 0))

	// Floor rounding must move toward -inf, not toward zero.
	got := axisRange(h, 10, 100, 0, 0, fallback)
	assert.Equal(t, Range{Min: -400, Max: 0}, got)
}

func TestAxisRangeDegenerateIsLegal(t *testing.T) {
	h := NewHistory(10)
	h.Append(Candle(600, 600, 0))

	got := axisRange(h, 10, 200, 0, 0, fallback)
	assert.Equal(t, Range{Min: 600, Max: 600}, got)
	assert.GreaterOrEqual(t, got.Span(), 0.0)
}
