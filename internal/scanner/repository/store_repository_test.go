package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang-signal-scanner/internal/entity"
	"golang-signal-scanner/internal/marketdata"
	"golang-signal-scanner/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 15, 15, 4, 5, 0, time.UTC)
}

func TestMarketDataRepository(t *testing.T) {
	gen := marketdata.NewGenerator(marketdata.NewSource(42), fixedClock)
	builder := marketdata.NewBuilder(gen, marketdata.BuilderConfig{Window: 30, Volatility: 0.02, MinBasePrice: 100, MaxBasePrice: 600})
	instruments := []entity.Instrument{{Symbol: "AAPL", Name: "Apple Inc."}, {Symbol: "TSLA", Name: "Tesla, Inc."}}
	repo := NewMarketDataRepository(builder, instruments, logger.NewNop())
	ctx := context.Background()

	assert.Empty(t, repo.GetAll(ctx))
	_, err := repo.GetBySymbol(ctx, "AAPL")
	assert.ErrorIs(t, err, ErrInstrumentNotFound)

	snaps, err := repo.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "AAPL", snaps[0].Symbol)
	assert.Equal(t, "TSLA", snaps[1].Symbol)
	assert.Len(t, snaps[0].History, 31)

	got, err := repo.GetBySymbol(ctx, " tsla ")
	require.NoError(t, err)
	assert.Equal(t, snaps[1], got)

	first := snaps[0]
	snaps[0].Price = -1
	again, _ := repo.GetBySymbol(ctx, "AAPL")
	assert.Equal(t, first.Price, again.Price)

	refreshed, err := repo.Refresh(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.History, refreshed[0].History)
}

func TestSignalRepository(t *testing.T) {
	repo := NewSignalRepository()
	ctx := context.Background()
	base := fixedClock()

	_, ok := repo.Get(ctx, "AAPL")
	assert.False(t, ok)

	repo.Save(ctx, entity.ClassifiedSignal{ID: "1", Symbol: "AAPL", Type: entity.SignalNeutral, Timestamp: base})
	repo.Save(ctx, entity.ClassifiedSignal{ID: "2", Symbol: "TSLA", Type: entity.SignalBuy, Timestamp: base.Add(time.Minute)})
	repo.Save(ctx, entity.ClassifiedSignal{ID: "3", Symbol: "AAPL", Type: entity.SignalStrongBuy, Timestamp: base.Add(2 * time.Minute)})

	got, ok := repo.Get(ctx, "aapl")
	require.True(t, ok)
	assert.Equal(t, "3", got.ID)

	all := repo.GetAll(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, "3", all[0].ID)
	assert.Equal(t, "2", all[1].ID)
}

func TestMemoryDispatchRepository_ReserveOnce(t *testing.T) {
	repo := NewMemoryDispatchRepository()
	ctx := context.Background()

	var won atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.Reserve(ctx, "AAPL-STRONG BUY-2024-06-15")
			assert.NoError(t, err)
			if ok {
				won.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), won.Load())

	ok, err := repo.Reserve(ctx, "AAPL-STRONG BUY-2024-06-16")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryDispatchRepository_ListNewestFirst(t *testing.T) {
	repo := NewMemoryDispatchRepository()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, entity.DispatchRecord{ID: fmt.Sprint(i)}))
	}
	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2", records[0].ID)
	assert.Equal(t, "0", records[2].ID)
}
