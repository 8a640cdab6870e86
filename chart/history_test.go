package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryAppendOrder(t *testing.T) {
	h := NewHistory(10)
	h.Append(Candle(1, 2, 100))
	h.Append(Gap())
	h.Append(Candle(3, 4, 160))

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, int64(100), h.At(0).Time)
	assert.True(t, h.At(1).IsGap())
	assert.Equal(t, int64(160), h.At(2).Time)
}

func TestHistoryCapacityClamp(t *testing.T) {
	h := NewHistory(5)
	for i := 0; i < 12; i++ {
		h.Append(Candle(float64(i), float64(i), int64(i)))
	}

	assert.Equal(t, 5, h.Len())
	// Exactly the most recent 5, oldest-first.
	for i := 0; i < 5; i++ {
		assert.Equal(t, int64(7+i), h.At(i).Time)
	}
}

func TestHistoryLastN(t *testing.T) {
	h := NewHistory(10)
	for i := 0; i < 4; i++ {
		h.Append(Candle(float64(i), float64(i), int64(i)))
	}

	last2 := h.LastN(2)
	assert.Len(t, last2, 2)
	assert.Equal(t, int64(2), last2[0].Time)
	assert.Equal(t, int64(3), last2[1].Time)

	// Asking for more than exists returns everything.
	assert.Len(t, h.LastN(99), 4)
	assert.Empty(t, NewHistory(3).LastN(2))
}
