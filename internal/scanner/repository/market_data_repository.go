package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang-signal-scanner/internal/entity"
	"golang-signal-scanner/internal/marketdata"
	"golang-signal-scanner/pkg/logger"
)

// marketDataRepository keeps the last generated universe in memory.
type marketDataRepository struct {
	mu          sync.RWMutex
	builder     *marketdata.Builder
	instruments []entity.Instrument
	snapshots   []entity.InstrumentSnapshot
	index       map[string]int
	logger      *logger.Logger
}

// NewMarketDataRepository creates a MarketDataRepository over the given instruments. Nothing is generated
// until the first Refresh.
func NewMarketDataRepository(builder *marketdata.Builder, instruments []entity.Instrument, log *logger.Logger) MarketDataRepository {
	return &marketDataRepository{
		builder:     builder,
		instruments: instruments,
		index:       make(map[string]int),
		logger:      log,
	}
}

// Refresh regenerates every snapshot and replaces the universe in one step.
func (r *marketDataRepository) Refresh(ctx context.Context) ([]entity.InstrumentSnapshot, error) {
	snapshots, err := r.builder.BuildUniverse(r.instruments)
	if err != nil {
		return nil, fmt.Errorf("failed to build universe: %w", err)
	}

	index := make(map[string]int, len(snapshots))
	for i, s := range snapshots {
		index[strings.ToUpper(s.Symbol)] = i
	}

	r.mu.Lock()
	r.snapshots = snapshots
	r.index = index
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "Market universe refreshed", logger.IntField("instruments", len(snapshots)))
	return r.GetAll(ctx), nil
}

// GetAll returns a copy of the universe in configured order.
func (r *marketDataRepository) GetAll(_ context.Context) []entity.InstrumentSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.InstrumentSnapshot, len(r.snapshots))
	copy(out, r.snapshots)
	return out
}

func (r *marketDataRepository) GetBySymbol(_ context.Context, symbol string) (entity.InstrumentSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return entity.InstrumentSnapshot{}, fmt.Errorf("%w: %s", ErrInstrumentNotFound, symbol)
	}
	return r.snapshots[i], nil
}
