package sensor

import (
	"context"
	"math/rand"
	"time"
)

// Sim is a hardware-free Source: a bounded random walk around typical indoor
// CO2 levels, with slowly wandering temperature and humidity. Used by the
// demo command and anywhere the node runs without an I2C bus.
type Sim struct {
	rng *rand.Rand

	co2  float64
	temp float64
	hum  float64

	now func() time.Time
}

func NewSim(seed int64) *Sim {
	return &Sim{
		rng:  rand.New(rand.NewSource(seed)),
		co2:  800,
		temp: 21.0,
		hum:  45.0,
		now:  time.Now,
	}
}

func (s *Sim) Name() string { return "sim" }

func (s *Sim) Read(ctx context.Context) (Reading, error) {
	if err := ctx.Err(); err != nil {
		return Reading{}, err
	}

	s.co2 = clip(s.co2+float64(s.rng.Intn(401)-200), 400, 2000)
	s.temp = clip(s.temp+s.rng.Float64()-0.5, 15, 30)
	s.hum = clip(s.hum+s.rng.Float64()*2-1, 20, 70)

	return Reading{
		CO2:          s.co2,
		TemperatureC: s.temp,
		HumidityRH:   s.hum,
		Time:         s.now().Unix(),
	}, nil
}
