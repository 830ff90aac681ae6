package service

import (
	"context"
	"fmt"

	"golang-signal-scanner/internal/entity"
	"golang-signal-scanner/internal/scanner/repository"
	"golang-signal-scanner/pkg/logger"
)

// StockService exposes the universe and on-demand analysis of single instruments.
type StockService interface {
	List(ctx context.Context, withHistory bool) []entity.InstrumentSnapshot
	Get(ctx context.Context, symbol string) (entity.InstrumentSnapshot, error)
	Refresh(ctx context.Context) ([]entity.InstrumentSnapshot, error)
	// Analyze classifies one instrument. Unless force is set, an existing signal is returned as is
	// and fresh is false.
	Analyze(ctx context.Context, symbol string, force bool) (signal entity.ClassifiedSignal, fresh bool, err error)
	Signals(ctx context.Context) []entity.ClassifiedSignal
	Signal(ctx context.Context, symbol string) (entity.ClassifiedSignal, bool)
}

// NewStockService creates a new stock service.
func NewStockService(log *logger.Logger, marketRepo repository.MarketDataRepository, signalRepo repository.SignalRepository, signalSvc SignalService, consumer SignalConsumer) StockService {
	return &stockService{
		logger:     log,
		marketRepo: marketRepo,
		signalRepo: signalRepo,
		signalSvc:  signalSvc,
		consumer:   consumer,
	}
}

type stockService struct {
	logger     *logger.Logger
	marketRepo repository.MarketDataRepository
	signalRepo repository.SignalRepository
	signalSvc  SignalService
	consumer   SignalConsumer
}

func (s *stockService) List(ctx context.Context, withHistory bool) []entity.InstrumentSnapshot {
	snapshots := s.marketRepo.GetAll(ctx)
	if withHistory {
		return snapshots
	}
	for i := range snapshots {
		snapshots[i] = snapshots[i].WithoutHistory()
	}
	return snapshots
}

func (s *stockService) Get(ctx context.Context, symbol string) (entity.InstrumentSnapshot, error) {
	return s.marketRepo.GetBySymbol(ctx, symbol)
}

func (s *stockService) Refresh(ctx context.Context) ([]entity.InstrumentSnapshot, error) {
	snapshots, err := s.marketRepo.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh market data: %w", err)
	}
	return snapshots, nil
}

func (s *stockService) Analyze(ctx context.Context, symbol string, force bool) (entity.ClassifiedSignal, bool, error) {
	snapshot, err := s.marketRepo.GetBySymbol(ctx, symbol)
	if err != nil {
		return entity.ClassifiedSignal{}, false, err
	}

	if !force {
		if existing, ok := s.signalRepo.Get(ctx, snapshot.Symbol); ok {
			return existing, false, nil
		}
	}

	signal := s.signalSvc.ClassifyInstrument(ctx, snapshot)
	s.signalRepo.Save(ctx, signal)
	s.consumer.OnSignal(ctx, snapshot, signal)
	return signal, true, nil
}

func (s *stockService) Signals(ctx context.Context) []entity.ClassifiedSignal {
	return s.signalRepo.GetAll(ctx)
}

func (s *stockService) Signal(ctx context.Context, symbol string) (entity.ClassifiedSignal, bool) {
	return s.signalRepo.Get(ctx, symbol)
}
