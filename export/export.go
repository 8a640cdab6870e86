// Package export renders journaled readings as standalone PNG charts,
// suitable for serving from a web directory or attaching to reports.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rustyeddy/airgraph/journal"
)

// ErrNoRecords is returned when there is nothing to chart.
var ErrNoRecords = fmt.Errorf("export: no records")

// Series splits records into parallel time/value slices for charting.
func Series(recs []journal.ReadingRecord) (xs []float64, co2, temp, hum []float64) {
	xs = make([]float64, 0, len(recs))
	co2 = make([]float64, 0, len(recs))
	temp = make([]float64, 0, len(recs))
	hum = make([]float64, 0, len(recs))
	for _, r := range recs {
		xs = append(xs, chart.TimeToFloat64(r.Time))
		co2 = append(co2, r.CO2)
		temp = append(temp, r.TemperatureC)
		hum = append(hum, r.HumidityRH)
	}
	return xs, co2, temp, hum
}

// co2Color bands CO2 dots by indoor air quality: green is fresh,
// red means open a window.
func co2Color(ppm float64) drawing.Color {
	if ppm < 800 {
		return drawing.Color{R: 55, G: 172, B: 86, A: 255}
	}
	if ppm < 1000 {
		return drawing.Color{R: 155, G: 212, B: 68, A: 255}
	}
	if ppm < 1400 {
		return drawing.Color{R: 241, G: 210, B: 8, A: 255}
	}
	if ppm < 2000 {
		return drawing.Color{R: 255, G: 140, B: 0, A: 255}
	}
	return drawing.Color{R: 237, G: 15, B: 5, A: 255}
}

func timeAxis() chart.XAxis {
	return chart.XAxis{
		Style: chart.Style{TextRotationDegrees: 90.0, FontSize: 6},
		ValueFormatter: func(v interface{}) string {
			typed := v.(float64)
			typedDate := chart.TimeFromFloat64(typed)
			return typedDate.Format("Jan-02-06 15:04")
		},
	}
}

func newChart(title, yName string, xs, ys []float64, style chart.Style) chart.Chart {
	return chart.Chart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      timeAxis(),
		YAxis: chart.YAxis{
			Name:      yName,
			NameStyle: chart.Style{FontColor: chart.ColorBlack},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				YAxis:   chart.YAxisPrimary,
				XValues: floatsToTimes(xs),
				YValues: ys,
				Style:   style,
			},
		},
	}
}

func floatsToTimes(xs []float64) []time.Time {
	out := make([]time.Time, len(xs))
	for i, x := range xs {
		out[i] = chart.TimeFromFloat64(x)
	}
	return out
}

// CO2Chart builds the CO2 chart with air quality dot banding.
func CO2Chart(recs []journal.ReadingRecord) chart.Chart {
	xs, co2, _, _ := Series(recs)
	style := chart.Style{
		StrokeColor: chart.ColorBlack,
		DotWidth:    3,
		DotColorProvider: func(xr, yr chart.Range, index int, x, y float64) drawing.Color {
			return co2Color(y)
		},
	}
	return newChart("CO2", "ppm", xs, co2, style)
}

// TemperatureChart builds the temperature chart.
func TemperatureChart(recs []journal.ReadingRecord) chart.Chart {
	xs, _, temp, _ := Series(recs)
	return newChart("Temperature", "°C", xs, temp, chart.Style{StrokeColor: chart.ColorBlack, DotWidth: 3})
}

// HumidityChart builds the relative humidity chart.
func HumidityChart(recs []journal.ReadingRecord) chart.Chart {
	xs, _, _, hum := Series(recs)
	return newChart("Humidity", "%RH", xs, hum, chart.Style{StrokeColor: chart.ColorBlack, DotWidth: 3})
}

// Render renders a chart as PNG to w.
func Render(g chart.Chart, w io.Writer) error {
	if err := g.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart %q: %w", g.Title, err)
	}
	return nil
}

// WriteCharts writes co2.png, temperature.png and humidity.png under dir.
// go-chart needs at least two points to draw a series.
func WriteCharts(dir string, recs []journal.ReadingRecord) error {
	if len(recs) < 2 {
		return ErrNoRecords
	}

	charts := map[string]chart.Chart{
		"co2.png":         CO2Chart(recs),
		"temperature.png": TemperatureChart(recs),
		"humidity.png":    HumidityChart(recs),
	}
	for name, g := range charts {
		if err := writeChart(filepath.Join(dir, name), g); err != nil {
			return err
		}
	}
	return nil
}

func writeChart(path string, g chart.Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Render(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
