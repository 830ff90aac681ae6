package marketdata

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqSource replays a fixed sequence of values, wrapping around.
type seqSource struct {
	values []float64
	i      int
}

func (s *seqSource) Float64() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

var fixedNow = func() time.Time { return time.Date(2024, 6, 15, 15, 4, 5, 0, time.UTC) }

func TestGenerate_LengthAndDates(t *testing.T) {
	gen := NewGenerator(NewSource(42), fixedNow)

	for _, length := range []int{1, 5, 30, 90} {
		history, err := gen.Generate(250, 0.02, length)
		require.NoError(t, err)
		require.Len(t, history, length+1)

		assert.Equal(t, "2024-06-15", history[len(history)-1].Date)
		for i := 1; i < len(history); i++ {
			prev, err := time.Parse("2006-01-02", history[i-1].Date)
			require.NoError(t, err)
			cur, err := time.Parse("2006-01-02", history[i].Date)
			require.NoError(t, err)
			assert.Equal(t, 24*time.Hour, cur.Sub(prev), "dates must advance one day at index %d", i)
		}
	}
}

func TestGenerate_ZeroLength(t *testing.T) {
	gen := NewGenerator(NewSource(7), fixedNow)

	history, err := gen.Generate(123.456, 0.02, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 123.46, history[0].Close)
	assert.Equal(t, "2024-06-15", history[0].Date)
}

func TestGenerate_FlatWalkAndVolume(t *testing.T) {
	gen := NewGenerator(&seqSource{values: []float64{0.5}}, fixedNow)

	history, err := gen.Generate(100, 0.02, 3)
	require.NoError(t, err)
	for _, p := range history {
		assert.Equal(t, 100.0, p.Close)
		assert.Equal(t, int64(1_250_000), p.Volume)
	}
}

func TestGenerate_VolumeSpike(t *testing.T) {
	// base draw 0 -> 1,000,000, spike draw 0.05 -> spike, factor draw 0.5 -> x3.5
	gen := NewGenerator(&seqSource{values: []float64{0, 0.05, 0.5}}, fixedNow)

	history, err := gen.Generate(100, 0.02, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3_500_000), history[0].Volume)
}

func TestGenerate_VolumeBounds(t *testing.T) {
	gen := NewGenerator(NewSource(99), fixedNow)

	history, err := gen.Generate(300, 0.02, 500)
	require.NoError(t, err)
	for _, p := range history {
		assert.GreaterOrEqual(t, p.Volume, int64(1_000_000))
		assert.Less(t, p.Volume, int64(7_500_000))
	}
}

func TestGenerate_DefaultVolatilityStaysNearBase(t *testing.T) {
	for seed := uint64(1); seed <= 200; seed++ {
		gen := NewGenerator(NewSource(seed), fixedNow)
		history, err := gen.Generate(200, 0.02, 30)
		require.NoError(t, err)
		for _, p := range history {
			assert.InDelta(t, 200, p.Close, 120, "seed %d drifted beyond 60%%", seed)
		}
	}
}

func TestGenerate_NoPriceFloor(t *testing.T) {
	// Every draw is 0, so each step applies -0.5 * volatility. With volatility 3 the price flips sign.
	gen := NewGenerator(&seqSource{values: []float64{0}}, fixedNow)

	history, err := gen.Generate(100, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, -50.0, history[1].Close)
}

func TestGenerate_InvalidInput(t *testing.T) {
	gen := NewGenerator(NewSource(1), fixedNow)

	tests := []struct {
		name       string
		basePrice  float64
		volatility float64
		length     int
		wantErr    error
	}{
		{"zero base price", 0, 0.02, 30, ErrInvalidBasePrice},
		{"negative base price", -10, 0.02, 30, ErrInvalidBasePrice},
		{"nan base price", math.NaN(), 0.02, 30, ErrInvalidBasePrice},
		{"negative volatility", 100, -0.1, 30, ErrInvalidVolatility},
		{"negative length", 100, 0.02, -1, ErrInvalidLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.Generate(tt.basePrice, tt.volatility, tt.length)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUniform(t *testing.T) {
	gen := NewGenerator(NewSource(3), fixedNow)
	for i := 0; i < 1000; i++ {
		v := gen.Uniform(100, 600)
		assert.GreaterOrEqual(t, v, 100.0)
		assert.Less(t, v, 600.0)
	}
}
