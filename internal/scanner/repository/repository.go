package repository

import (
	"context"
	"errors"

	"golang-signal-scanner/internal/entity"
	"golang-signal-scanner/internal/scanner/dto"
)

var (
	ErrInstrumentNotFound = errors.New("instrument not found")
	ErrAIDisabled         = errors.New("ai provider disabled")
)

// AIRepository is the external reasoning collaborator. Any error means the caller must fall back.
type AIRepository interface {
	AnalyzeSignal(ctx context.Context, snapshot entity.InstrumentSnapshot) (*dto.SignalAnalysisResult, error)
	MarketOverview(ctx context.Context, headlines []dto.Headline) (*dto.MarketOverviewResult, error)
}

// MarketDataRepository holds the current synthetic universe.
type MarketDataRepository interface {
	Refresh(ctx context.Context) ([]entity.InstrumentSnapshot, error)
	GetAll(ctx context.Context) []entity.InstrumentSnapshot
	GetBySymbol(ctx context.Context, symbol string) (entity.InstrumentSnapshot, error)
}

// SignalRepository keeps the latest signal per symbol. A new signal replaces the previous one.
type SignalRepository interface {
	Save(ctx context.Context, signal entity.ClassifiedSignal)
	Get(ctx context.Context, symbol string) (entity.ClassifiedSignal, bool)
	GetAll(ctx context.Context) []entity.ClassifiedSignal
}

// DispatchRepository is the alert dedup keyspace plus its audit log.
// Reserve must be atomic: it returns true only for the first caller of a key.
type DispatchRepository interface {
	Reserve(ctx context.Context, key string) (bool, error)
	Save(ctx context.Context, record entity.DispatchRecord) error
	List(ctx context.Context) ([]entity.DispatchRecord, error)
}

// HeadlineRepository supplies recent headlines for the market briefing.
type HeadlineRepository interface {
	Latest(ctx context.Context) ([]dto.Headline, error)
}

type disabledAIRepository struct{}

// NewDisabledAIRepository returns an AIRepository that always fails, so every caller gets its fallback.
func NewDisabledAIRepository() AIRepository {
	return disabledAIRepository{}
}

func (disabledAIRepository) AnalyzeSignal(context.Context, entity.InstrumentSnapshot) (*dto.SignalAnalysisResult, error) {
	return nil, ErrAIDisabled
}

func (disabledAIRepository) MarketOverview(context.Context, []dto.Headline) (*dto.MarketOverviewResult, error) {
	return nil, ErrAIDisabled
}
