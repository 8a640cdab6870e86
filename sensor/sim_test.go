package sensor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimStaysInBounds(t *testing.T) {
	s := NewSim(1)
	s.now = func() time.Time { return time.Unix(1000, 0) }

	for i := 0; i < 500; i++ {
		r, err := s.Read(context.Background())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, r.CO2, 400.0)
		assert.LessOrEqual(t, r.CO2, 2000.0)
		assert.GreaterOrEqual(t, r.TemperatureC, 15.0)
		assert.LessOrEqual(t, r.TemperatureC, 30.0)
		assert.GreaterOrEqual(t, r.HumidityRH, 20.0)
		assert.LessOrEqual(t, r.HumidityRH, 70.0)
		assert.Equal(t, int64(1000), r.Time)
	}
}

func TestSimDeterministicPerSeed(t *testing.T) {
	a := NewSim(42)
	b := NewSim(42)
	ra, _ := a.Read(context.Background())
	rb, _ := b.Read(context.Background())
	assert.Equal(t, ra.CO2, rb.CO2)
}

func TestSimHonorsContext(t *testing.T) {
	s := NewSim(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Read(ctx)
	assert.Error(t, err)
}
