package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rustyeddy/airgraph/journal"
)

func testRecords(n int) []journal.ReadingRecord {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	recs := make([]journal.ReadingRecord, 0, n)
	for i := 0; i < n; i++ {
		recs = append(recs, journal.ReadingRecord{
			Time:         base.Add(time.Duration(i) * time.Minute),
			CO2:          600 + float64(i)*50,
			TemperatureC: 20 + float64(i)*0.1,
			HumidityRH:   45,
			Source:       "sim",
		})
	}
	return recs
}

func TestSeriesSplitsColumns(t *testing.T) {
	recs := testRecords(3)
	xs, co2, temp, hum := Series(recs)

	require.Len(t, xs, 3)
	assert.Equal(t, []float64{600, 650, 700}, co2)
	assert.InDelta(t, 20.1, temp[1], 1e-9)
	assert.Equal(t, []float64{45, 45, 45}, hum)
	assert.Less(t, xs[0], xs[1])
}

func TestCO2ColorBands(t *testing.T) {
	green := drawing.Color{R: 55, G: 172, B: 86, A: 255}
	red := drawing.Color{R: 237, G: 15, B: 5, A: 255}

	assert.Equal(t, green, co2Color(450))
	assert.Equal(t, red, co2Color(2400))
	assert.NotEqual(t, co2Color(900), co2Color(1500))
}

func TestRenderProducesPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(CO2Chart(testRecords(10)), &buf))

	// PNG magic.
	require.Greater(t, buf.Len(), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, buf.Bytes()[:4])
}

func TestWriteCharts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteCharts(dir, testRecords(10)))

	for _, name := range []string{"co2.png", "temperature.png", "humidity.png"} {
		st, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, st.Size(), name)
	}
}

func TestWriteChartsNeedsRecords(t *testing.T) {
	err := WriteCharts(t.TempDir(), testRecords(1))
	assert.ErrorIs(t, err, ErrNoRecords)
}
