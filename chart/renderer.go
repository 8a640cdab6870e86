package chart

import (
	"fmt"

	"github.com/rustyeddy/airgraph/display"
)

// minBarHeight keeps bars with near-equal min/max visible: every candle draws
// at least this many pixels tall.
const minBarHeight = 2

const tickSize = 2

// Overlay is the text drawn above the graph: the primary metric pair on the
// left and up to three free-text lines in the second column.
type Overlay struct {
	TemperatureC float64
	CO2          float64
	Secondary    []string
}

// Renderer rasterizes history entries onto a Surface. It is stateless across
// renders: identical inputs produce an identical draw-command sequence.
type Renderer struct {
	cfg Config
}

// NewRenderer validates the configuration, rejecting any render mode other
// than candle at construction time.
func NewRenderer(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{cfg: cfg}, nil
}

// Render clears the surface and draws the overlay, the candle bars and both
// axes. It does not flush; the caller decides between full and partial
// refresh.
func (r *Renderer) Render(s display.Surface, h *History, ar Range, ov Overlay) {
	s.Fill(display.White)
	r.drawOverlay(s, ov)
	r.drawBars(s, h, ar)
	r.drawXAxis(s)
	r.drawYAxis(s, ar)
}

// drawOverlay renders the two text columns. The first column is two
// fixed-width metric lines; the second holds free text, clipped to the
// column width. Both get an opaque background so partial refreshes do not
// smear stale glyphs.
func (r *Renderer) drawOverlay(s display.Surface, ov Overlay) {
	const (
		col1W  = 120
		col2W  = 120
		colGap = 6
	)

	tempTxt := fmt.Sprintf("Temp:%5.1f C", ov.TemperatureC)
	co2Txt := fmt.Sprintf("CO2: %5d ppm", int(ov.CO2))

	s.FillRect(0, 0, col1W, 2*display.LineHeight, display.White)
	s.Text(tempTxt, 0, 0, display.Black)
	s.Text(co2Txt, 0, display.LineHeight, display.Black)

	col2Start := col1W + colGap
	s.FillRect(col2Start, 0, col2W, maxSecondaryLines*display.LineHeight, display.White)
	maxChars := col2W / display.CharWidth
	for i, line := range ov.Secondary {
		if len(line) > maxChars {
			line = line[:maxChars]
		}
		s.Text(line, col2Start, i*display.LineHeight, display.Black)
	}
}

// drawBars plots history newest-first from the right edge, one pixel column
// per entry, skipping gaps. Entries beyond the graph width are off-screen
// and not drawn.
func (r *Renderer) drawBars(s display.Surface, h *History, ar Range) {
	cfg := r.cfg
	span := ar.Span()

	n := h.Len()
	if n > cfg.GraphWidth {
		n = cfg.GraphWidth
	}

	for dist := 0; dist < n; dist++ {
		e := h.At(h.Len() - 1 - dist)
		if e.IsGap() {
			continue
		}
		x := cfg.FullWidth - 1 - dist

		if span <= 0 {
			// Degenerate axis range: flat bars at the baseline instead of a
			// divide-by-zero in the y-mapping.
			s.VLine(x, cfg.FullHeight-minBarHeight, minBarHeight, display.Black)
			continue
		}

		yTop := r.mapY(e.Max, ar, span)
		yBot := r.mapY(e.Min, ar, span)
		height := yBot - yTop
		if height < minBarHeight {
			height = minBarHeight
		}
		s.VLine(x, yTop, height, display.Black)
	}
}

// mapY converts a value to a pixel row; larger values map to lower rows.
func (r *Renderer) mapY(v float64, ar Range, span float64) int {
	rel := (v - ar.Min) / span
	return r.cfg.FullHeight - int(rel*float64(r.cfg.GraphHeight))
}

// drawXAxis draws tick marks along the bottom edge and elapsed-time labels,
// each centered over its tick on an opaque background patch.
func (r *Renderer) drawXAxis(s display.Surface) {
	cfg := r.cfg

	labelStep := cfg.GraphWidth / cfg.XLabels
	y := cfg.FullHeight - display.CharHeight - tickSize
	for i := 1; i < cfg.XLabels; i++ {
		txt := fmt.Sprintf("%d%s", i*cfg.XStep, cfg.XUnit)
		x := cfg.FullWidth - i*labelStep - display.CharWidth/2*len(txt)
		s.Rect(x, y, display.CharWidth*len(txt), display.CharHeight, display.White, true)
		s.Text(txt, x, y, display.Black)
	}

	tickStep := cfg.GraphWidth / cfg.XTicks
	for i := 1; i < cfg.XTicks; i++ {
		x := cfg.FullWidth - i*tickStep
		s.VLine(x, cfg.FullHeight-tickSize, tickSize, display.Black)
	}
}

// drawYAxis draws the numeric bounds as a two-line label above the graph and
// tick marks along the right edge.
func (r *Renderer) drawYAxis(s display.Surface, ar Range) {
	cfg := r.cfg

	minTxt := fmt.Sprintf("%d-", int(ar.Min))
	maxTxt := fmt.Sprintf("%d", int(ar.Max))
	s.Text(minTxt, cfg.FullWidth-display.CharWidth*len(minTxt),
		cfg.FullHeight-2*display.LineHeight+2-cfg.GraphHeight, display.Black)
	s.Text(maxTxt, cfg.FullWidth-display.CharWidth*len(maxTxt),
		cfg.FullHeight-display.CharHeight-cfg.GraphHeight, display.Black)

	tickStep := cfg.GraphHeight / cfg.YTicks
	for i := 0; i < cfg.YTicks; i++ {
		y := cfg.FullHeight - i*tickStep
		s.HLine(cfg.FullWidth-tickSize, y, tickSize, display.Black)
	}
}
