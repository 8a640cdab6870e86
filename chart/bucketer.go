package chart

// Bucketer folds an irregular (value, timestamp) stream into fixed-width time
// bins. A bin closes when a sample (or a Flush) arrives more than one bin
// width after the bin opened; the closed bin is summarized into a candle
// entry, or a gap if it held no samples.
//
// Only one bin closes per call even if several bin widths elapsed since the
// last sample: skipped windows are not back-filled.
type Bucketer struct {
	secondsPerBin float64

	bin      []float64
	binStart int64
	started  bool

	lastValue float64

	onClose func(Entry)
}

// NewBucketer builds a bucketer that emits each closed bin through onClose.
func NewBucketer(secondsPerBin float64, onClose func(Entry)) *Bucketer {
	return &Bucketer{
		secondsPerBin: secondsPerBin,
		onClose:       onClose,
	}
}

// AddOne feeds a single sample. Reports whether a bin closed.
//
// A sample that lands past the open bin's window closes that bin first and
// then starts the new bin; the triggering sample belongs only to the new bin.
// The new bin opens seeded with the closed bin's last value so consecutive
// candles chain without visual discontinuities.
func (b *Bucketer) AddOne(value float64, ts int64) bool {
	if !b.started {
		b.started = true
		b.binStart = ts
	}

	closed := false
	if b.outdated(ts) {
		var carry float64
		hasCarry := len(b.bin) > 0
		if hasCarry {
			carry = b.bin[len(b.bin)-1]
		}
		b.close()
		b.binStart = ts
		if hasCarry {
			b.bin = append(b.bin, carry)
		}
		closed = true
	}

	b.bin = append(b.bin, value)
	b.lastValue = value
	return closed
}

// AddBatch feeds several samples sharing one timestamp. Reports whether any
// bin closed.
func (b *Bucketer) AddBatch(values []float64, ts int64) bool {
	closed := false
	for _, v := range values {
		if b.AddOne(v, ts) {
			closed = true
		}
	}
	return closed
}

// Flush closes the open bin if its window has passed, without contributing a
// sample and without seeding a carry value. A bin that stayed empty closes as
// a gap; this is how sensor silence shows up on the timeline. Reports whether
// a bin closed.
func (b *Bucketer) Flush(ts int64) bool {
	if !b.started {
		b.started = true
		b.binStart = ts
		return false
	}
	if !b.outdated(ts) {
		return false
	}
	b.close()
	b.binStart = ts
	return true
}

// LastValue returns the most recently added sample, for the text overlay.
func (b *Bucketer) LastValue() float64 { return b.lastValue }

func (b *Bucketer) outdated(ts int64) bool {
	return float64(ts-b.binStart) > b.secondsPerBin
}

func (b *Bucketer) close() {
	if len(b.bin) == 0 {
		b.onClose(Gap())
		return
	}
	min, max := b.bin[0], b.bin[0]
	for _, v := range b.bin[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	b.onClose(Candle(min, max, b.binStart))
	b.bin = b.bin[:0]
}
