package chart

import "fmt"

// Mode selects the rendering strategy. Only the min/max candle mode exists;
// the enum is closed so an unsupported mode is rejected when the renderer is
// constructed, not discovered mid-render.
type Mode uint8

const (
	ModeCandle Mode = iota
)

func (m Mode) String() string {
	switch m {
	case ModeCandle:
		return "candle"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// unitSeconds maps an x-axis unit suffix to seconds.
var unitSeconds = map[string]int64{
	"d": 24 * 60 * 60,
	"h": 60 * 60,
	"m": 60,
}

// Config is the immutable chart geometry and axis configuration.
//
// The x-axis spans XLabels * XStep * XUnit of wall time across GraphWidth
// pixel columns, one time bin per column. The y-axis is rescaled on every
// redraw from the visible history, rounded to YStep with PadLow/PadHigh
// extra steps of headroom.
type Config struct {
	Mode Mode

	FullWidth   int
	FullHeight  int
	GraphWidth  int
	GraphHeight int

	YStep  float64
	YTicks int

	XLabels int
	XTicks  int
	XStep   int
	XUnit   string

	PadLow  int
	PadHigh int

	// Fallback axis range used when the visible window holds no candles.
	FallbackMin float64
	FallbackMax float64
}

// DefaultConfig matches the 2.9" landscape panel the node ships with:
// 296x128 px, the top sixth reserved for the text overlay, 30-minute x-axis
// label steps over a 3.5 hour window.
func DefaultConfig() Config {
	return Config{
		Mode:        ModeCandle,
		FullWidth:   296,
		FullHeight:  128,
		GraphWidth:  296,
		GraphHeight: 128 * 5 / 6,
		YStep:       200,
		YTicks:      5,
		XLabels:     7,
		XTicks:      14,
		XStep:       30,
		XUnit:       "m",
		PadLow:      1,
		PadHigh:     0,
		FallbackMin: 400,
		FallbackMax: 1000,
	}
}

// TotalRangeSeconds is the wall time the full graph width covers.
func (c Config) TotalRangeSeconds() int64 {
	return int64(c.XLabels) * int64(c.XStep) * unitSeconds[c.XUnit]
}

// SecondsPerBin is how much wall time one pixel column aggregates.
func (c Config) SecondsPerBin() float64 {
	return float64(c.TotalRangeSeconds()) / float64(c.GraphWidth)
}

func (c Config) Validate() error {
	if c.Mode != ModeCandle {
		return fmt.Errorf("chart: unsupported mode %q", c.Mode)
	}
	if c.FullWidth <= 0 || c.FullHeight <= 0 {
		return fmt.Errorf("chart: display size %dx%d must be positive", c.FullWidth, c.FullHeight)
	}
	if c.GraphWidth <= 0 || c.GraphHeight <= 0 {
		return fmt.Errorf("chart: graph size %dx%d must be positive", c.GraphWidth, c.GraphHeight)
	}
	if c.GraphWidth > c.FullWidth || c.GraphHeight > c.FullHeight {
		return fmt.Errorf("chart: graph %dx%d exceeds display %dx%d",
			c.GraphWidth, c.GraphHeight, c.FullWidth, c.FullHeight)
	}
	if _, ok := unitSeconds[c.XUnit]; !ok {
		return fmt.Errorf("chart: unknown x-axis unit %q (want d, h or m)", c.XUnit)
	}
	if c.YStep <= 0 {
		return fmt.Errorf("chart: y-axis step must be positive, got %v", c.YStep)
	}
	if c.YTicks <= 0 || c.XTicks <= 0 || c.XLabels <= 0 {
		return fmt.Errorf("chart: tick/label counts must be positive")
	}
	if c.XStep <= 0 {
		return fmt.Errorf("chart: x-axis step must be positive, got %d", c.XStep)
	}
	if c.PadLow < 0 || c.PadHigh < 0 {
		return fmt.Errorf("chart: padding must not be negative")
	}
	if c.FallbackMax < c.FallbackMin {
		return fmt.Errorf("chart: fallback range %v-%v inverted", c.FallbackMin, c.FallbackMax)
	}
	return nil
}
