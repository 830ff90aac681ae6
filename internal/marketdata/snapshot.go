package marketdata

import (
	"errors"
	"fmt"

	"golang-signal-scanner/internal/entity"
)

var ErrInsufficientHistory = errors.New("history needs at least two points")

// BuilderConfig controls how snapshots are generated.
type BuilderConfig struct {
	Window       int
	Volatility   float64
	MinBasePrice float64
	MaxBasePrice float64
}

// Builder turns generated history into instrument snapshots.
type Builder struct {
	gen *Generator
	cfg BuilderConfig
}

func NewBuilder(gen *Generator, cfg BuilderConfig) *Builder {
	return &Builder{gen: gen, cfg: cfg}
}

// BuildSnapshot generates a history from basePrice and derives the snapshot metrics.
func (b *Builder) BuildSnapshot(symbol, name string, basePrice float64) (entity.InstrumentSnapshot, error) {
	history, err := b.gen.Generate(basePrice, b.cfg.Volatility, b.cfg.Window)
	if err != nil {
		return entity.InstrumentSnapshot{}, fmt.Errorf("generate history for %s: %w", symbol, err)
	}
	return Derive(symbol, name, history)
}

// BuildUniverse builds one snapshot per instrument, in input order, each from its own random base price.
func (b *Builder) BuildUniverse(instruments []entity.Instrument) ([]entity.InstrumentSnapshot, error) {
	snapshots := make([]entity.InstrumentSnapshot, 0, len(instruments))
	for _, inst := range instruments {
		basePrice := b.gen.Uniform(b.cfg.MinBasePrice, b.cfg.MaxBasePrice)
		snap, err := b.BuildSnapshot(inst.Symbol, inst.Name, basePrice)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

// Derive computes the snapshot metrics of a history. Degenerate divisions yield 0.
func Derive(symbol, name string, history []entity.PricePoint) (entity.InstrumentSnapshot, error) {
	if len(history) < 2 {
		return entity.InstrumentSnapshot{}, ErrInsufficientHistory
	}

	last := history[len(history)-1]
	prev := history[len(history)-2]

	change := last.Close - prev.Close
	changePercent := 0.0
	if prev.Close != 0 {
		changePercent = change / prev.Close * 100
	}

	var total float64
	for _, p := range history {
		total += float64(p.Volume)
	}
	avgVolume := total / float64(len(history))

	relativeVolume := 0.0
	if avgVolume > 0 {
		relativeVolume = float64(last.Volume) / avgVolume
	}

	return entity.InstrumentSnapshot{
		Symbol:         symbol,
		Name:           name,
		Price:          last.Close,
		Change:         change,
		ChangePercent:  changePercent,
		Volume:         last.Volume,
		AvgVolume:      avgVolume,
		RelativeVolume: relativeVolume,
		History:        history,
	}, nil
}
