// Package sensor defines the reading boundary the node samples through, a
// simulated source for host-side runs, and the SCD30 wire codec.
package sensor

import "context"

// Reading is one timestamped measurement set. CO2 is the primary charted
// metric; temperature and humidity ride along for the overlay and the
// published payload.
type Reading struct {
	CO2          float64
	TemperatureC float64
	HumidityRH   float64
	Time         int64 // unix seconds
}

// Source produces readings. The node calls it opaquely; it never inspects
// what kind of sensor sits behind it.
type Source interface {
	Name() string
	Read(ctx context.Context) (Reading, error)
}

// clip bounds v to [min, max].
func clip(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
