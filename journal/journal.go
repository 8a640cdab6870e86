package journal

import (
	"time"

	"github.com/rustyeddy/airgraph/sensor"
)

// ReadingRecord is one persisted sensor reading. IDs are monotonic ULIDs so
// insertion order survives in the primary key.
type ReadingRecord struct {
	ID           string
	Time         time.Time
	CO2          float64
	TemperatureC float64
	HumidityRH   float64
	Source       string
}

// FromReading stamps a sensor reading into a record with a fresh ID.
func FromReading(r sensor.Reading, source string) ReadingRecord {
	return ReadingRecord{
		Time:         time.Unix(r.Time, 0).UTC(),
		CO2:          r.CO2,
		TemperatureC: r.TemperatureC,
		HumidityRH:   r.HumidityRH,
		Source:       source,
	}
}

// Journal persists readings for later charting and export.
type Journal interface {
	Record(ReadingRecord) error
	// Recent returns the newest n records, oldest-first.
	Recent(n int) ([]ReadingRecord, error)
	// Between returns records with Time in [start, end), oldest-first.
	Between(start, end time.Time) ([]ReadingRecord, error)
	Close() error
}

// Noop discards everything; used when journaling is disabled.
type Noop struct{}

func (Noop) Record(ReadingRecord) error          { return nil }
func (Noop) Recent(int) ([]ReadingRecord, error) { return nil, nil }
func (Noop) Between(time.Time, time.Time) ([]ReadingRecord, error) {
	return nil, nil
}
func (Noop) Close() error { return nil }
