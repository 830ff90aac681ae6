// Package marketdata produces synthetic price/volume history and the metrics derived from it.
package marketdata

import (
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"golang-signal-scanner/internal/entity"
	"golang-signal-scanner/pkg/common"
	"golang-signal-scanner/pkg/utils"
)

const (
	baseVolumeMin    = 1_000_000
	baseVolumeSpan   = 500_000
	spikeProbability = 0.1
	spikeFactorMin   = 2
	spikeFactorSpan  = 3
)

var (
	ErrInvalidBasePrice  = errors.New("base price must be positive")
	ErrInvalidVolatility = errors.New("volatility must not be negative")
	ErrInvalidLength     = errors.New("history length must not be negative")
)

// Source supplies uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a PCG source. A zero seed picks a random one.
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generator walks prices forward from a base price. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd Source
	now utils.Clock
}

// NewGenerator creates a Generator drawing from rnd and dating the last point at now().
func NewGenerator(rnd Source, now utils.Clock) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{rnd: rnd, now: now}
}

// Generate returns length+1 daily points ending today, oldest first. The first point is the base price.
// Prices are not floored; a large volatility over a long window can drive them to zero or below.
func (g *Generator) Generate(basePrice, volatility float64, length int) ([]entity.PricePoint, error) {
	if basePrice <= 0 || math.IsNaN(basePrice) || math.IsInf(basePrice, 0) {
		return nil, ErrInvalidBasePrice
	}
	if volatility < 0 || math.IsNaN(volatility) {
		return nil, ErrInvalidVolatility
	}
	if length < 0 {
		return nil, ErrInvalidLength
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	today := utils.StartOfDay(g.now())
	history := make([]entity.PricePoint, 0, length+1)
	price := basePrice

	for i := 0; i <= length; i++ {
		if i > 0 {
			price += price * (g.rnd.Float64() - 0.5) * volatility
		}
		history = append(history, entity.PricePoint{
			Date:   today.AddDate(0, 0, i-length).Format(common.DateLayout),
			Close:  round2(price),
			Volume: g.volume(),
		})
	}
	return history, nil
}

// Uniform draws a value in [min, max).
func (g *Generator) Uniform(min, max float64) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return min + g.rnd.Float64()*(max-min)
}

func (g *Generator) volume() int64 {
	v := baseVolumeMin + g.rnd.Float64()*baseVolumeSpan
	if g.rnd.Float64() < spikeProbability {
		v *= spikeFactorMin + g.rnd.Float64()*spikeFactorSpan
	}
	return int64(v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
