package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collectEntries() (*[]Entry, func(Entry)) {
	var got []Entry
	return &got, func(e Entry) { got = append(got, e) }
}

func TestBucketerFirstSampleStartsBin(t *testing.T) {
	got, sink := collectEntries()
	b := NewBucketer(30, sink)

	// First ever sample must not close a phantom bin against an unset start.
	closed := b.AddOne(500, 1_700_000_000)
	assert.False(t, closed)
	assert.Empty(t, *got)
}

func TestBucketerCloseOnWindowCross(t *testing.T) {
	got, sink := collectEntries()
	b := NewBucketer(30, sink)

	b.AddOne(500, 0)
	b.AddOne(700, 0)
	closed := b.AddOne(900, 31)

	assert.True(t, closed)
	assert.Len(t, *got, 1)
	e := (*got)[0]
	assert.False(t, e.IsGap())
	assert.Equal(t, 500.0, e.Min)
	assert.Equal(t, 700.0, e.Max)
	assert.Equal(t, int64(0), e.Time)

	// The trigger sample opened the new bin together with the carried close
	// value: [700, 900].
	assert.Equal(t, []float64{700, 900}, b.bin)
	assert.Equal(t, 900.0, b.LastValue())
}

func TestBucketerExactBoundaryStaysOpen(t *testing.T) {
	got, sink := collectEntries()
	b := NewBucketer(30, sink)

	b.AddOne(500, 0)
	closed := b.AddOne(600, 30) // ts - start == width is not outdated
	assert.False(t, closed)
	assert.Empty(t, *got)
}

func TestBucketerOneCloseDespiteLongSilence(t *testing.T) {
	got, sink := collectEntries()
	b := NewBucketer(30, sink)

	b.AddOne(500, 0)
	closed := b.AddOne(800, 1000) // many windows elapsed, still one close

	assert.True(t, closed)
	assert.Len(t, *got, 1)
}

func TestBucketerCandleSummarizesBin(t *testing.T) {
	got, sink := collectEntries()
	b := NewBucketer(30, sink)

	b.AddBatch([]float64{650, 420, 910}, 0)
	b.AddOne(700, 31)

	assert.Len(t, *got, 1)
	e := (*got)[0]
	assert.Equal(t, 420.0, e.Min)
	assert.Equal(t, 910.0, e.Max)
}

func TestBucketerAddBatchReportsClose(t *testing.T) {
	_, sink := collectEntries()
	b := NewBucketer(30, sink)

	b.AddOne(500, 0)
	assert.True(t, b.AddBatch([]float64{600, 650}, 40))
	assert.False(t, b.AddBatch(nil, 41))
}

func TestBucketerFlushProducesGap(t *testing.T) {
	got, sink := collectEntries()
	b := NewBucketer(30, sink)

	b.AddOne(500, 0)
	assert.True(t, b.Flush(31)) // closes [500] as a candle
	assert.True(t, b.Flush(62)) // nothing arrived: gap
	assert.False(t, b.Flush(70))

	assert.Len(t, *got, 2)
	assert.False(t, (*got)[0].IsGap())
	assert.True(t, (*got)[1].IsGap())
}

func TestBucketerFlushBeforeAnySample(t *testing.T) {
	got, sink := collectEntries()
	b := NewBucketer(30, sink)

	assert.False(t, b.Flush(100))
	assert.Empty(t, *got)

	// The flush anchored the first bin; a later flush closes it as a gap.
	assert.True(t, b.Flush(131))
	assert.Len(t, *got, 1)
	assert.True(t, (*got)[0].IsGap())
}
