package repository

import (
	"context"
	"sort"
	"strings"

	"golang-signal-scanner/internal/entity"

	"github.com/patrickmn/go-cache"
)

// signalRepository is the in-memory signal board.
type signalRepository struct {
	board *cache.Cache
}

// NewSignalRepository creates a SignalRepository. Entries never expire; each symbol holds its latest signal.
func NewSignalRepository() SignalRepository {
	return &signalRepository{board: cache.New(cache.NoExpiration, 0)}
}

func (r *signalRepository) Save(_ context.Context, signal entity.ClassifiedSignal) {
	r.board.Set(strings.ToUpper(signal.Symbol), signal, cache.NoExpiration)
}

func (r *signalRepository) Get(_ context.Context, symbol string) (entity.ClassifiedSignal, bool) {
	v, ok := r.board.Get(strings.ToUpper(strings.TrimSpace(symbol)))
	if !ok {
		return entity.ClassifiedSignal{}, false
	}
	return v.(entity.ClassifiedSignal), true
}

// GetAll returns the board newest first.
func (r *signalRepository) GetAll(_ context.Context) []entity.ClassifiedSignal {
	items := r.board.Items()
	signals := make([]entity.ClassifiedSignal, 0, len(items))
	for _, item := range items {
		signals = append(signals, item.Object.(entity.ClassifiedSignal))
	}
	sort.Slice(signals, func(i, j int) bool {
		if signals[i].Timestamp.Equal(signals[j].Timestamp) {
			return signals[i].Symbol < signals[j].Symbol
		}
		return signals[i].Timestamp.After(signals[j].Timestamp)
	})
	return signals
}
