package repository

import (
	"context"
	"sync"

	"golang-signal-scanner/internal/entity"

	"github.com/patrickmn/go-cache"
)

// memoryDispatchRepository keeps dedup keys and records for the process lifetime.
type memoryDispatchRepository struct {
	keys    *cache.Cache
	mu      sync.RWMutex
	records []entity.DispatchRecord
}

// NewMemoryDispatchRepository creates a process-local DispatchRepository.
func NewMemoryDispatchRepository() DispatchRepository {
	return &memoryDispatchRepository{keys: cache.New(cache.NoExpiration, 0)}
}

// Reserve relies on cache.Add failing for an existing key, which makes check-and-set a single step.
func (r *memoryDispatchRepository) Reserve(_ context.Context, key string) (bool, error) {
	if err := r.keys.Add(key, struct{}{}, cache.NoExpiration); err != nil {
		return false, nil
	}
	return true, nil
}

func (r *memoryDispatchRepository) Save(_ context.Context, record entity.DispatchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

// List returns records newest first.
func (r *memoryDispatchRepository) List(_ context.Context) ([]entity.DispatchRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.DispatchRecord, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}
