package chart

import (
	"fmt"
	"log/slog"

	"github.com/rustyeddy/airgraph/display"
)

// maxSecondaryLines caps the free-text column of the overlay.
const maxSecondaryLines = 3

// Display ties the bucketer, history, axis scaling and renderer to one
// surface. It is single-threaded: a bin close triggers a synchronous redraw
// before Add returns, so the caller's sampling cadence must exceed the
// worst-case render time.
type Display struct {
	cfg      Config
	surface  display.Surface
	renderer *Renderer
	hist     *History
	bucket   *Bucketer
	log      *slog.Logger

	temp      float64
	secondary []string
	rendered  bool
}

// New builds a Display for the given surface. Configuration problems,
// including an unsupported render mode, fail here rather than at first
// render. A nil logger discards logs.
func New(cfg Config, s display.Surface, log *slog.Logger) (*Display, error) {
	r, err := NewRenderer(cfg)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	d := &Display{
		cfg:      cfg,
		surface:  s,
		renderer: r,
		hist:     NewHistory(cfg.GraphWidth),
		log:      log,
	}
	d.bucket = NewBucketer(cfg.SecondsPerBin(), d.hist.Append)
	log.Debug("display configured",
		"size", fmt.Sprintf("%dx%d", cfg.FullWidth, cfg.FullHeight),
		"graph", fmt.Sprintf("%dx%d", cfg.GraphWidth, cfg.GraphHeight),
		"seconds_per_bin", cfg.SecondsPerBin())
	return d, nil
}

// Add feeds one sample; ts is unix seconds. If the sample closes a bin the
// chart is redrawn before returning. A redraw error means the panel is
// unreachable and is fatal for the node.
func (d *Display) Add(value float64, ts int64) error {
	if d.bucket.AddOne(value, ts) {
		return d.Redraw()
	}
	return nil
}

// AddBatch feeds several samples sharing one timestamp.
func (d *Display) AddBatch(values []float64, ts int64) error {
	if d.bucket.AddBatch(values, ts) {
		return d.Redraw()
	}
	return nil
}

// Flush advances the timeline without a sample; sensor-silent windows close
// as gaps and trigger a redraw like any other bin close.
func (d *Display) Flush(ts int64) error {
	if d.bucket.Flush(ts) {
		return d.Redraw()
	}
	return nil
}

// SetTemp sets the temperature shown in the overlay on the next redraw.
func (d *Display) SetTemp(t float64) { d.temp = t }

// SetSecondText sets the free-text overlay column; at most three lines are
// kept.
func (d *Display) SetSecondText(lines []string) {
	if len(lines) > maxSecondaryLines {
		lines = lines[:maxSecondaryLines]
	}
	d.secondary = lines
}

// History exposes the retained entries, oldest-first.
func (d *Display) History() *History { return d.hist }

// Redraw recomputes the axis range, renders whatever history exists and
// flushes the surface. The first flush is a full refresh, every later one a
// partial refresh.
func (d *Display) Redraw() error {
	ar := axisRange(d.hist, d.cfg.GraphWidth, d.cfg.YStep, d.cfg.PadLow, d.cfg.PadHigh,
		Range{Min: d.cfg.FallbackMin, Max: d.cfg.FallbackMax})
	d.log.Debug("redraw", "entries", d.hist.Len(), "ymin", ar.Min, "ymax", ar.Max)

	d.renderer.Render(d.surface, d.hist, ar, Overlay{
		TemperatureC: d.temp,
		CO2:          d.bucket.LastValue(),
		Secondary:    d.secondary,
	})

	var err error
	if !d.rendered {
		d.rendered = true
		err = d.surface.FullRefresh()
	} else {
		err = d.surface.PartialRefresh()
	}
	if err != nil {
		return fmt.Errorf("display refresh: %w", err)
	}
	return nil
}
