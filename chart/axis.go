package chart

import "math"

// Range is the vertical axis bounds for one redraw. Never persisted; it is
// recomputed from the visible history every time.
type Range struct {
	Min float64
	Max float64
}

func (r Range) Span() float64 { return r.Max - r.Min }

// axisRange derives the rounded vertical bounds from the last `window`
// history entries, skipping gaps. With no candles in the window it returns
// the configured fallback range.
//
// The raw min rounds down to a multiple of step minus padLow extra steps; the
// raw max rounds up to a multiple of step plus padHigh extra steps. The
// result always satisfies Max >= Min, though Span may be zero.
func axisRange(h *History, window int, step float64, padLow, padHigh int, fallback Range) Range {
	gmin := math.Inf(1)
	gmax := math.Inf(-1)
	found := false

	for _, e := range h.LastN(window) {
		if e.IsGap() {
			continue
		}
		gmin = math.Min(gmin, e.Min)
		gmax = math.Max(gmax, e.Max)
		found = true
	}

	if !found {
		return fallback
	}

	return Range{
		Min: step * (math.Floor(gmin/step) - float64(padLow)),
		Max: step * (math.Ceil(gmax/step) + float64(padHigh)),
	}
}
